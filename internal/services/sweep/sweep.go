// Package sweep рассылает владельцам истекших QR-кодов письма с собранными фотографиями.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// DefaultSendTimeout ограничение на отправку одного письма.
const DefaultSendTimeout = 30 * time.Second

// ErrSweepInProgress предыдущий запуск еще не завершился.
var ErrSweepInProgress = errors.New("sweep already in progress")

// Repository методы хранилища, нужные рассылке. Рассылка только читает данные.
type Repository interface {
	FindExpiredQRCodes(ctx context.Context, now time.Time) ([]*models.QRCode, error)
	FindPhotosByQR(ctx context.Context, qrCodeID string) ([]models.Photo, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Notifier доставляет уведомление: напрямую по SMTP или через очередь.
type Notifier interface {
	Send(ctx context.Context, n models.Notification) error
}

// Locker распределенная блокировка между процессами рассылки.
type Locker interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Observer получает итог каждого запуска.
type Observer interface {
	ObserveSweep(report Report, duration time.Duration, err error)
}

// Report итог одного запуска.
type Report struct {
	Candidates int
	Sent       int
	Skipped    int
	Failed     int
}

// Service выполняет рассылку.
type Service struct {
	repo        Repository
	notifier    Notifier
	log         *slog.Logger
	now         func() time.Time
	sendTimeout time.Duration
	locker      Locker
	observer    Observer
	running     atomic.Bool
}

// Option настраивает Service.
type Option func(*Service)

// WithClock задает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSendTimeout задает ограничение на отправку одного письма.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sendTimeout = d
		}
	}
}

// WithLocker включает распределенную блокировку.
func WithLocker(l Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithObserver подключает сбор метрик.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// New создает Service.
func New(repo Repository, notifier Notifier, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
		sendTimeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run выполняет один проход рассылки. Ошибку возвращает только сбой выборки кандидатов;
// сбои по отдельным QR-кодам логируются и учитываются в Report.Failed.
func (s *Service) Run(ctx context.Context) (Report, error) {
	const op = "sweep.Run"
	log := s.log.With(slog.String("op", op))

	if !s.running.CompareAndSwap(false, true) {
		log.Warn("previous sweep is still running, skipping")
		return Report{}, ErrSweepInProgress
	}
	defer s.running.Store(false)

	if s.locker != nil {
		acquired, err := s.locker.TryAcquire(ctx)
		if err != nil {
			log.Warn("failed to acquire sweep lock, continuing without it", sl.Err(err))
		} else if !acquired {
			log.Info("sweep lock is held by another process, skipping")
			return Report{}, ErrSweepInProgress
		} else {
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx)); err != nil {
					log.Warn("failed to release sweep lock", sl.Err(err))
				}
			}()
		}
	}

	start := time.Now()
	report, err := s.run(ctx, log)
	if s.observer != nil {
		s.observer.ObserveSweep(report, time.Since(start), err)
	}
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("sweep finished",
		slog.Int("candidates", report.Candidates),
		slog.Int("sent", report.Sent),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, log *slog.Logger) (Report, error) {
	var report Report

	expired, err := s.repo.FindExpiredQRCodes(ctx, s.now())
	if err != nil {
		log.Error("failed to find expired qr codes", sl.Err(err))
		return report, err
	}
	report.Candidates = len(expired)

	for _, qr := range expired {
		if ctx.Err() != nil {
			log.Warn("sweep interrupted", sl.Err(ctx.Err()))
			report.Failed += report.Candidates - report.Sent - report.Skipped - report.Failed
			break
		}

		switch s.process(ctx, log.With(slog.String("qr_id", qr.QRID)), qr) {
		case outcomeSent:
			report.Sent++
		case outcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}
	return report, nil
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSent
	outcomeSkipped
)

func (s *Service) process(ctx context.Context, log *slog.Logger, qr *models.QRCode) outcome {
	photos, err := s.repo.FindPhotosByQR(ctx, qr.ID)
	if err != nil {
		log.Error("failed to load photos", sl.Err(err))
		return outcomeFailed
	}
	if len(photos) == 0 {
		log.Debug("no photos for expired qr code, skipping")
		return outcomeSkipped
	}

	owner, err := s.repo.FindUserByID(ctx, qr.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("qr code owner not found, skipping", slog.String("user_id", qr.UserID))
			return outcomeSkipped
		}
		log.Error("failed to load qr code owner", sl.Err(err))
		return outcomeFailed
	}
	if owner.Email == "" {
		log.Warn("qr code owner has no email, skipping", slog.String("user_id", qr.UserID))
		return outcomeSkipped
	}

	n, err := buildDigest(owner, qr, photos)
	if err != nil {
		log.Error("failed to build digest", sl.Err(err))
		return outcomeFailed
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err = s.notifier.Send(sendCtx, n); err != nil {
		log.Error("failed to send digest", slog.String("to", owner.Email), sl.Err(err))
		return outcomeFailed
	}

	log.Info("digest sent", slog.String("to", owner.Email), slog.Int("photos", len(photos)))
	return outcomeSent
}
