package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	libupload "github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/photo"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindQRCodeByQRID(ctx context.Context, qrID string) (*models.QRCode, error) {
	args := m.Called(ctx, qrID)
	resp, _ := args.Get(0).(*models.QRCode)
	return resp, args.Error(1)
}

func (m *RepoMock) CreatePhoto(ctx context.Context, p models.Photo) (*models.Photo, error) {
	args := m.Called(ctx, p)
	resp, _ := args.Get(0).(*models.Photo)
	return resp, args.Error(1)
}

func (m *RepoMock) FindPhotosByQR(ctx context.Context, qrCodeID string) ([]models.Photo, error) {
	args := m.Called(ctx, qrCodeID)
	resp, _ := args.Get(0).([]models.Photo)
	return resp, args.Error(1)
}

func (m *RepoMock) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.User)
	return resp, args.Error(1)
}

type UploaderMock struct{ mock.Mock }

func (m *UploaderMock) Upload(ctx context.Context, f libupload.File) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	if !withFile {
		return newFileRequest(t, fields, "", "")
	}
	return newFileRequest(t, fields, "party.jpg", "jpeg-bytes")
}

func newFileRequest(t *testing.T, fields map[string]string, fileName, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/photo/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_ServeHTTP(t *testing.T) {
	qr := &models.QRCode{ID: "qr-internal", UserID: "user-1", QRID: "code-1", ValidTill: time.Now()}

	t.Run("created", func(t *testing.T) {
		repo := new(RepoMock)
		up := new(UploaderMock)
		repo.On("FindQRCodeByQRID", mock.Anything, "code-1").Return(qr, nil)
		up.On("Upload", mock.Anything, mock.MatchedBy(func(f libupload.File) bool {
			return f.Name == "party.jpg" && f.Size == int64(len("jpeg-bytes"))
		})).Return("http://cdn/p.jpg", nil)
		repo.On("CreatePhoto", mock.Anything, models.Photo{
			QRCodeID: "qr-internal", PhotoURL: "http://cdn/p.jpg", UploadedBy: models.UploadedByOwner,
		}).Return(&models.Photo{ID: "photo-1", QRCodeID: "qr-internal", PhotoURL: "http://cdn/p.jpg", UploadedBy: models.UploadedByOwner}, nil)

		h := New(newNoopLogger(), photo.New(repo, up, newNoopLogger(), 0), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newRequest(t, map[string]string{"qrId": "code-1", "uploadedBy": "Owner"}, true))

		require.Equal(t, http.StatusCreated, w.Code)
		var body struct {
			Data models.Photo `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "http://cdn/p.jpg", body.Data.PhotoURL)
		repo.AssertExpectations(t)
	})

	t.Run("without file creates nothing", func(t *testing.T) {
		repo := new(RepoMock)
		up := new(UploaderMock)

		h := New(newNoopLogger(), photo.New(repo, up, newNoopLogger(), 0), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newRequest(t, map[string]string{"qrId": "code-1"}, false))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)
		up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("not multipart", func(t *testing.T) {
		repo := new(RepoMock)
		h := New(newNoopLogger(), photo.New(repo, new(UploaderMock), newNoopLogger(), 0), 1<<20)

		req := httptest.NewRequest(http.MethodPost, "/photo/upload", strings.NewReader(`{"qrId":"code-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)
	})

	t.Run("unknown qr code", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindQRCodeByQRID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		h := New(newNoopLogger(), photo.New(repo, new(UploaderMock), newNoopLogger(), 0), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newRequest(t, map[string]string{"qrId": "ghost"}, true))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("upload failure", func(t *testing.T) {
		repo := new(RepoMock)
		up := new(UploaderMock)
		repo.On("FindQRCodeByQRID", mock.Anything, "code-1").Return(qr, nil)
		up.On("Upload", mock.Anything, mock.Anything).Return("", assert.AnError)

		h := New(newNoopLogger(), photo.New(repo, up, newNoopLogger(), 0), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newRequest(t, map[string]string{"qrId": "code-1"}, true))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)
	})
	t.Run("html is rejected by disk storage", func(t *testing.T) {
		dir := t.TempDir()
		disk, err := libupload.NewDisk(dir, "http://localhost:8080/static", 1<<20)
		require.NoError(t, err)

		repo := new(RepoMock)
		repo.On("FindQRCodeByQRID", mock.Anything, "code-1").Return(qr, nil)

		h := New(newNoopLogger(), photo.New(repo, disk, newNoopLogger(), time.Second), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newFileRequest(t, map[string]string{"qrId": "code-1"}, "evil.html",
			"<html><script>fetch('/api/v1/users/getUser')</script></html>"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image must be JPEG, PNG, GIF or WebP")
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("oversized image is a client error", func(t *testing.T) {
		disk, err := libupload.NewDisk(t.TempDir(), "http://localhost:8080/static", 16)
		require.NoError(t, err)

		repo := new(RepoMock)
		repo.On("FindQRCodeByQRID", mock.Anything, "code-1").Return(qr, nil)

		h := New(newNoopLogger(), photo.New(repo, disk, newNoopLogger(), time.Second), 1<<20)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, newFileRequest(t, map[string]string{"qrId": "code-1"}, "big.png",
			"\x89PNG\r\n\x1a\n"+strings.Repeat("x", 64)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)
	})
}
