// Package user содержит операции с профилем пользователя.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/password"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// Repository методы хранилища, нужные сервису.
type Repository interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	SearchUsersByUsername(ctx context.Context, fragment string) ([]*models.User, error)
	UpdateUserDetails(ctx context.Context, id, fullName, email, accountType string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRefreshToken(ctx context.Context, id, token string) error
}

// Uploader сохраняет файл во внешнем хранилище и возвращает его URL.
type Uploader interface {
	Upload(ctx context.Context, f upload.File) (string, error)
}

// Service операции над профилем текущего пользователя.
type Service struct {
	repo          Repository
	uploader      Uploader
	log           *slog.Logger
	uploadTimeout time.Duration
}

// New создает Service.
func New(repo Repository, uploader Uploader, log *slog.Logger, uploadTimeout time.Duration) *Service {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &Service{repo: repo, uploader: uploader, log: log, uploadTimeout: uploadTimeout}
}

// Current возвращает профиль пользователя.
func (s *Service) Current(ctx context.Context, userID string) (*models.PublicUser, error) {
	const op = "user.Current"

	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, s.lookupError(op, err)
	}
	public := u.Public()
	return &public, nil
}

// UpdateDetails меняет имя, почту и тип учетной записи.
func (s *Service) UpdateDetails(ctx context.Context, userID, fullName, email, accountType string) (*models.PublicUser, error) {
	const op = "user.UpdateDetails"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, apperr.InvalidInput("fullName and email are required")
	}
	if accountType == "" {
		accountType = models.AccountCustomer
	}
	if accountType != models.AccountCustomer && accountType != models.AccountRestaurant {
		return nil, apperr.InvalidInput("accountType must be Customer or Restaurant")
	}

	u, err := s.repo.UpdateUserDetails(ctx, userID, fullName, email, accountType)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("email is already taken")
		}
		return nil, s.lookupError(op, err)
	}

	log.Info("account details updated")
	public := u.Public()
	return &public, nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	const op = "user.ChangePassword"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	if oldPassword == "" || strings.TrimSpace(newPassword) == "" {
		return apperr.InvalidInput("oldPassword and newPassword are required")
	}

	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return s.lookupError(op, err)
	}
	if err = password.CompareHash(u.PasswordHash, oldPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return apperr.InvalidInput("invalid old password")
		}
		log.Error("failed to compare password", sl.Err(err))
		return apperr.Internal("failed to change password", err)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return apperr.InvalidInput("password is too long")
		}
		log.Error("failed to hash password", sl.Err(err))
		return apperr.Internal("failed to change password", err)
	}
	if err = s.repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return s.lookupError(op, err)
	}

	log.Info("password changed")
	return nil
}

// Logout стирает сохраненный токен обновления.
func (s *Service) Logout(ctx context.Context, userID string) error {
	const op = "user.Logout"

	if err := s.repo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return s.lookupError(op, err)
	}
	s.log.Info("user logged out", slog.String("op", op), slog.String("user_id", userID))
	return nil
}

// UpdateAvatar загружает новый аватар и сохраняет его URL.
func (s *Service) UpdateAvatar(ctx context.Context, userID string, f *upload.File) (*models.PublicUser, error) {
	return s.updateImage(ctx, "user.UpdateAvatar", userID, f, s.repo.UpdateAvatar)
}

// UpdateCoverImage загружает новую обложку и сохраняет ее URL.
func (s *Service) UpdateCoverImage(ctx context.Context, userID string, f *upload.File) (*models.PublicUser, error) {
	return s.updateImage(ctx, "user.UpdateCoverImage", userID, f, s.repo.UpdateCoverImage)
}

func (s *Service) updateImage(
	ctx context.Context,
	op, userID string,
	f *upload.File,
	store func(ctx context.Context, id, url string) (*models.User, error),
) (*models.PublicUser, error) {
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	if f == nil || f.Content == nil || f.Size == 0 {
		return nil, apperr.InvalidInput("image file is required")
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	url, err := s.uploader.Upload(uploadCtx, *f)
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
		return nil, apperr.Upstream("failed to upload image", nil)
	}

	u, err := store(ctx, userID, url)
	if err != nil {
		return nil, s.lookupError(op, err)
	}
	log.Info("image updated", slog.String("url", url))
	public := u.Public()
	return &public, nil
}

// SearchByUsername ищет пользователей по подстроке имени без учета регистра.
func (s *Service) SearchByUsername(ctx context.Context, fragment string) ([]models.PublicUser, error) {
	const op = "user.SearchByUsername"

	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, apperr.InvalidInput("username is required")
	}

	users, err := s.repo.SearchUsersByUsername(ctx, fragment)
	if err != nil {
		return nil, s.lookupError(op, err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("no users found")
	}

	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}

func (s *Service) lookupError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	s.log.Error("storage failure", slog.String("op", op), sl.Err(err))
	return apperr.Internal("internal error", err)
}
