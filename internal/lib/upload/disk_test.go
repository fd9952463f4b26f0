package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jpegData = "\xff\xd8\xff\xe0\x00\x10JFIF\x00jpeg-bytes"
	pngData  = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	gifData  = "GIF89a\x01\x00\x01\x00"
	webpData = "RIFF\x24\x00\x00\x00WEBPVP8 "
)

func TestDisk_Upload(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, "http://localhost:8080/static/", 1024)
	require.NoError(t, err)

	url, err := d.Upload(context.Background(), File{Name: "Party.JPG", Content: strings.NewReader(jpegData)})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "http://localhost:8080/static/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	name := strings.TrimPrefix(url, "http://localhost:8080/static/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, jpegData, string(data))
}

func TestDisk_Upload_ExtensionFromContent(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		wantExt  string
	}{
		{name: "jpeg", fileName: "a.jpeg", content: jpegData, wantExt: ".jpg"},
		{name: "png named html", fileName: "evil.html", content: pngData, wantExt: ".png"},
		{name: "gif without extension", fileName: "photo", content: gifData, wantExt: ".gif"},
		{name: "webp named svg", fileName: "x.svg", content: webpData, wantExt: ".webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDisk(t.TempDir(), "http://cdn", 1024)
			require.NoError(t, err)

			url, err := d.Upload(context.Background(), File{Name: tt.fileName, Content: strings.NewReader(tt.content)})
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, filepath.Ext(url))
		})
	}
}

func TestDisk_Upload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func() context.Context
		file    File
		wantErr error
	}{
		{
			name:    "empty file",
			ctx:     context.Background,
			file:    File{Name: "a.png", Content: strings.NewReader("")},
			wantErr: ErrEmptyFile,
		},
		{
			name: "cancelled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			file:    File{Name: "a.png", Content: strings.NewReader(pngData)},
			wantErr: context.Canceled,
		},
		{
			name:    "html page",
			ctx:     context.Background,
			file:    File{Name: "evil.html", Content: strings.NewReader("<html><script>alert(1)</script></html>")},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "svg image",
			ctx:     context.Background,
			file:    File{Name: "x.svg", Content: strings.NewReader(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"/>`)},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "html named as jpeg",
			ctx:     context.Background,
			file:    File{Name: "photo.jpg", Content: strings.NewReader("<!DOCTYPE html><p>hi</p>")},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "declared size over limit",
			ctx:     context.Background,
			file:    File{Name: "a.png", Size: 4096, Content: strings.NewReader(pngData)},
			wantErr: ErrTooLarge,
		},
		{
			name:    "content over limit",
			ctx:     context.Background,
			file:    File{Name: "a.png", Content: strings.NewReader(pngData + strings.Repeat("x", 2048))},
			wantErr: ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := NewDisk(dir, "http://cdn", 1024)
			require.NoError(t, err)

			url, err := d.Upload(tt.ctx(), tt.file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
			assert.Empty(t, url)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "failed upload must not leave files behind")
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(fmt.Errorf("op: %w", ErrTooLarge)))
	assert.True(t, IsClientError(fmt.Errorf("op: %w", ErrUnsupportedType)))
	assert.True(t, IsClientError(ErrEmptyFile))
	assert.False(t, IsClientError(context.DeadlineExceeded))
	assert.False(t, IsClientError(errors.New("disk full")))
}
