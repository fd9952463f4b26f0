// Package upload сохраняет загруженные файлы и возвращает их публичный URL.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyFile файл не содержит данных.
	ErrEmptyFile = errors.New("empty file")
	// ErrTooLarge файл больше допустимого размера.
	ErrTooLarge = errors.New("file is too large")
	// ErrUnsupportedType содержимое не является изображением JPEG, PNG, GIF или WebP.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// sniffLen столько байт http.DetectContentType учитывает при определении типа.
const sniffLen = 512

// imageExtensions допустимые типы содержимого и расширения сохраняемых файлов.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsClientError сообщает, что загрузка отклонена из-за самого файла,
// а не из-за сбоя хранилища.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType)
}

// ClientMessage текст для клиента по ошибке, для которой IsClientError истинно.
func ClientMessage(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "image file is too large"
	case errors.Is(err, ErrUnsupportedType):
		return "image must be JPEG, PNG, GIF or WebP"
	default:
		return "image file is empty"
	}
}

// File загружаемый файл.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Disk хранит файлы в локальном каталоге, который раздается по PublicBaseURL.
type Disk struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewDisk создает каталог dir при необходимости.
func NewDisk(dir, publicBaseURL string, maxSize int64) (*Disk, error) {
	const op = "upload.NewDisk"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Disk{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Upload определяет тип изображения по содержимому, сохраняет файл под случайным
// именем с расширением этого типа и возвращает его публичный URL.
// Имя файла, присланное клиентом, не используется.
func (d *Disk) Upload(ctx context.Context, f File) (string, error) {
	const op = "upload.Disk.Upload"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if d.maxSize > 0 && f.Size > d.maxSize {
		return "", fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	src := f.Content
	if d.maxSize > 0 {
		src = io.LimitReader(src, d.maxSize+1)
	}
	src = &ctxReader{ctx: ctx, r: src}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	head = head[:n]
	if n == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}
	if d.maxSize > 0 && int64(n) > d.maxSize {
		return "", fmt.Errorf("%s: %w", op, ErrTooLarge)
	}
	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrUnsupportedType)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(d.dir, name)
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
	closeErr := dst.Close()
	switch {
	case err != nil:
	case closeErr != nil:
		err = closeErr
	case d.maxSize > 0 && written > d.maxSize:
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return d.baseURL + "/" + name, nil
}

// ctxReader прерывает чтение после отмены контекста.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
