// Package auth содержит регистрацию, вход и проверку токенов доступа.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/jwt"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/password"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// FindUserByEmail возвращает пользователя по почте.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateRefreshToken сохраняет выданный токен обновления.
	UpdateRefreshToken(ctx context.Context, id, token string) error
}

// RegisterInput данные для регистрации.
type RegisterInput struct {
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FullName    string          `json:"fullName"`
	Password    string          `json:"password"`
	AccountType string          `json:"accountType"`
	Location    models.Location `json:"location"`
}

// LoginResult пользователь и выданные токены.
type LoginResult struct {
	User         models.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	const op = "auth.Register"
	log := s.log.With(slog.String("op", op))

	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperr.InvalidInput("all fields are required")
	}

	accountType := in.AccountType
	if accountType == "" {
		accountType = models.AccountCustomer
	}
	if accountType != models.AccountCustomer && accountType != models.AccountRestaurant {
		return nil, apperr.InvalidInput("accountType must be Customer or Restaurant")
	}
	if err := ValidateLocation(in.Location); err != nil {
		return nil, err
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, apperr.InvalidInput("password is too long")
		}
		log.Error("failed to hash password", sl.Err(err))
		return nil, apperr.Internal("failed to register user", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		AccountType:  accountType,
		Location:     models.Location{Type: models.LocationPoint, Coordinates: in.Location.Coordinates},
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("user with email or username already exists")
		}
		log.Error("failed to create user", sl.Err(err))
		return nil, apperr.Internal("failed to register user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	public := user.Public()
	return &public, nil
}

// ValidateLocation проверяет геоточку: тип Point и координаты [долгота, широта] в допустимых пределах.
func ValidateLocation(loc models.Location) error {
	if loc.Type != models.LocationPoint {
		return apperr.InvalidInput("location type must be Point")
	}
	if len(loc.Coordinates) != 2 {
		return apperr.InvalidInput("location must have exactly two coordinates")
	}
	lng, lat := loc.Coordinates[0], loc.Coordinates[1]
	if lng < -180 || lng > 180 {
		return apperr.InvalidInput("longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return apperr.InvalidInput("latitude must be between -90 and 90")
	}
	return nil
}

// Login проверяет пароль пользователя и выдает токены доступа и обновления.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "auth.Login"
	log := s.log.With(slog.String("op", op))

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || rawPassword == "" {
		return nil, apperr.InvalidInput("email and password are required")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user does not exist")
		}
		log.Error("failed to load user", sl.Err(err))
		return nil, apperr.Internal("failed to login", err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, apperr.Unauthorized("invalid user credentials")
	}

	access, err := s.jwtMaker.GenerateAccessToken(jwt.Subject{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	})
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))
		return nil, apperr.Internal("failed to login", err)
	}
	refresh, err := s.jwtMaker.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Error("failed to generate refresh token", sl.Err(err))
		return nil, apperr.Internal("failed to login", err)
	}
	if err = s.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		log.Error("failed to store refresh token", sl.Err(err))
		return nil, apperr.Internal("failed to login", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return &LoginResult{
		User:         user.Public(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// ValidateToken проверяет токен доступа и возвращает его claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.AccessClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.Unauthorized("unauthorized request")
	}
	claims, err := s.jwtMaker.ParseAccessToken(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid access token", err)
	}
	return claims, nil
}
