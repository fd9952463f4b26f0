// Package photo принимает фотографии гостей и владельцев QR-кодов
// и отдает их вместе с данными QR-кода.
package photo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// DefaultUploadTimeout ограничение на загрузку одного файла.
const DefaultUploadTimeout = 30 * time.Second

// Repository методы хранилища, нужные сервису.
type Repository interface {
	FindQRCodeByQRID(ctx context.Context, qrID string) (*models.QRCode, error)
	CreatePhoto(ctx context.Context, photo models.Photo) (*models.Photo, error)
	FindPhotosByQR(ctx context.Context, qrCodeID string) ([]models.Photo, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Uploader сохраняет файл во внешнем хранилище и возвращает его URL.
type Uploader interface {
	Upload(ctx context.Context, f upload.File) (string, error)
}

// UploadRequest запрос на загрузку фотографии.
type UploadRequest struct {
	QRID       string
	UploadedBy string
	File       *upload.File
}

// Service реализует прием и выдачу фотографий.
type Service struct {
	repo          Repository
	uploader      Uploader
	log           *slog.Logger
	uploadTimeout time.Duration
}

// New создает Service. При uploadTimeout <= 0 используется DefaultUploadTimeout.
func New(repo Repository, uploader Uploader, log *slog.Logger, uploadTimeout time.Duration) *Service {
	if uploadTimeout <= 0 {
		uploadTimeout = DefaultUploadTimeout
	}
	return &Service{
		repo:          repo,
		uploader:      uploader,
		log:           log,
		uploadTimeout: uploadTimeout,
	}
}

// Upload загружает файл и привязывает фотографию к QR-коду.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*models.Photo, error) {
	const op = "photo.Upload"
	log := s.log.With(slog.String("op", op), slog.String("qr_id", req.QRID))

	if strings.TrimSpace(req.QRID) == "" {
		return nil, apperr.InvalidInput("qrId is required")
	}
	if req.File == nil || req.File.Content == nil || req.File.Size == 0 {
		return nil, apperr.InvalidInput("photo file is required")
	}
	uploadedBy := req.UploadedBy
	if uploadedBy == "" {
		uploadedBy = models.UploadedByGuest
	}
	if uploadedBy != models.UploadedByGuest && uploadedBy != models.UploadedByOwner {
		return nil, apperr.InvalidInput("uploadedBy must be Owner or Guest")
	}

	qr, err := s.repo.FindQRCodeByQRID(ctx, req.QRID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("qr code not found")
		}
		log.Error("failed to load qr code", sl.Err(err))
		return nil, apperr.Internal("failed to upload photo", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	url, err := s.uploader.Upload(uploadCtx, *req.File)
	cancel()
	if err != nil {
		if upload.IsClientError(err) {
			log.Info("image rejected", sl.Err(err))
			return nil, apperr.Wrap(apperr.KindInvalidInput, upload.ClientMessage(err), err)
		}
		log.Error("image upload failed", sl.Err(err))
		return nil, apperr.Upstream("failed to upload image", err)
	}
	if url == "" {
		log.Error("image upload returned empty url")
		return nil, apperr.Upstream("failed to upload image", nil)
	}

	photo, err := s.repo.CreatePhoto(ctx, models.Photo{
		QRCodeID:   qr.ID,
		PhotoURL:   url,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		log.Error("failed to save photo", sl.Err(err))
		return nil, apperr.Internal("failed to save photo", err)
	}

	log.Info("photo uploaded", slog.String("photo_id", photo.ID), slog.String("uploaded_by", uploadedBy))
	return photo, nil
}

// ListForQRCode возвращает QR-код, его фотографии, имя и почту владельца.
func (s *Service) ListForQRCode(ctx context.Context, qrID string) (*models.QRCodePhotos, error) {
	const op = "photo.ListForQRCode"
	log := s.log.With(slog.String("op", op), slog.String("qr_id", qrID))

	if strings.TrimSpace(qrID) == "" {
		return nil, apperr.InvalidInput("qrId is required")
	}

	qr, err := s.repo.FindQRCodeByQRID(ctx, qrID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("qr code not found")
		}
		log.Error("failed to load qr code", sl.Err(err))
		return nil, apperr.Internal("failed to load photos", err)
	}

	photos, err := s.repo.FindPhotosByQR(ctx, qr.ID)
	if err != nil {
		log.Error("failed to load photos", sl.Err(err))
		return nil, apperr.Internal("failed to load photos", err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	result := &models.QRCodePhotos{QRCode: *qr, Photos: photos}

	owner, err := s.repo.FindUserByID(ctx, qr.UserID)
	switch {
	case err == nil:
		result.OwnerName = owner.FullName
		result.OwnerEmail = owner.Email
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("qr code owner not found", slog.String("user_id", qr.UserID))
	default:
		log.Error("failed to load qr code owner", sl.Err(err))
		return nil, apperr.Internal("failed to load photos", err)
	}

	return result, nil
}
