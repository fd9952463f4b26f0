// Package qrcode управляет жизненным циклом QR-кодов: выпуском, получением и проверкой срока действия.
package qrcode

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/cache"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

const (
	// maxGenerateAttempts число попыток вставки при коллизии внешнего кода.
	maxGenerateAttempts = 3
	cacheTTL            = time.Hour
)

// Repository методы хранилища, нужные сервису.
type Repository interface {
	CreateQRCode(ctx context.Context, qr models.QRCode) (*models.QRCode, error)
	FindQRCodeByQRID(ctx context.Context, qrID string) (*models.QRCode, error)
	FindQRCodesByUser(ctx context.Context, userID string) ([]*models.QRCode, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Cache кэш записей QR-кодов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service реализует операции над QR-кодами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option настраивает Service.
type Option func(*Service)

// WithClock задает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator задает генератор внешних кодов.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New создает Service. cache может быть nil.
func New(repo Repository, c Cache, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		cache: c,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate выпускает новый QR-код для пользователя userID со сроком действия до validTill.
func (s *Service) Generate(ctx context.Context, userID string, validTill time.Time) (*models.QRCode, error) {
	const op = "qrcode.Generate"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	if strings.TrimSpace(userID) == "" {
		return nil, apperr.InvalidInput("user id is required")
	}
	if validTill.IsZero() {
		return nil, apperr.InvalidInput("validTill is required")
	}

	if _, err := s.repo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		log.Error("failed to load user", sl.Err(err))
		return nil, apperr.Internal("failed to generate qr code", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		qr, err := s.repo.CreateQRCode(ctx, models.QRCode{
			UserID:    userID,
			QRID:      s.newID(),
			ValidTill: validTill,
		})
		switch {
		case err == nil:
			log.Info("qr code generated", slog.String("qr_id", qr.QRID))
			s.store(ctx, log, qr)
			return qr, nil
		case errors.Is(err, repository.ErrDuplicate):
			log.Warn("qr id collision, regenerating", slog.Int("attempt", attempt))
			lastErr = err
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("user not found")
		default:
			log.Error("failed to create qr code", sl.Err(err))
			return nil, apperr.Internal("failed to generate qr code", err)
		}
	}
	return nil, apperr.Wrap(apperr.KindConflict, "could not allocate a unique qr code", lastErr)
}

// Details возвращает QR-код по внешнему коду.
func (s *Service) Details(ctx context.Context, qrID string) (*models.QRCode, error) {
	const op = "qrcode.Details"
	log := s.log.With(slog.String("op", op), slog.String("qr_id", qrID))

	if strings.TrimSpace(qrID) == "" {
		return nil, apperr.InvalidInput("qrId is required")
	}

	if s.cache != nil {
		var cached models.QRCode
		found, err := s.cache.Get(ctx, cache.QRCodeKey(qrID), &cached)
		if err != nil {
			log.Warn("failed to read qr code from cache", sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	qr, err := s.repo.FindQRCodeByQRID(ctx, qrID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("qr code not found")
		}
		log.Error("failed to load qr code", sl.Err(err))
		return nil, apperr.Internal("failed to load qr code", err)
	}
	s.store(ctx, log, qr)
	return qr, nil
}

// Validate проверяет, действителен ли QR-код в текущий момент.
// Истекший код возвращает ошибку вида Gone.
func (s *Service) Validate(ctx context.Context, qrID string) (*models.QRCodeValidation, error) {
	qr, err := s.Details(ctx, qrID)
	if err != nil {
		return nil, err
	}
	if qr.Expired(s.now()) {
		return nil, apperr.Gone("qr code has expired")
	}
	return &models.QRCodeValidation{QRCode: *qr, IsValid: true}, nil
}

// ListForUser возвращает QR-коды пользователя, новые первыми.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*models.QRCode, error) {
	const op = "qrcode.ListForUser"
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.InvalidInput("user id is required")
	}
	codes, err := s.repo.FindQRCodesByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list qr codes", slog.String("op", op), sl.Err(err))
		return nil, apperr.Internal("failed to list qr codes", err)
	}
	if codes == nil {
		codes = []*models.QRCode{}
	}
	return codes, nil
}

func (s *Service) store(ctx context.Context, log *slog.Logger, qr *models.QRCode) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.QRCodeKey(qr.QRID), qr, cacheTTL); err != nil {
		log.Warn("failed to cache qr code", sl.Err(err))
	}
}
