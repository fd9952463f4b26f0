// Package server реализует gRPC-сервер для авторизационного сервиса.
//
// AuthServer принимает запросы регистрации, входа и валидации JWT токенов,
// делегирует бизнес-логику AuthService и переводит ошибки в коды gRPC.
package server

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/jwt"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

// AuthService бизнес-логика авторизации.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	ValidateToken(ctx context.Context, token string) (*jwt.AccessClaims, error)
}

// AuthServer реализует gRPC-сервис авторизации
type AuthServer struct {
	authService AuthService
	log         *slog.Logger
}

var _ authpb.AuthServiceServer = (*AuthServer)(nil)

// NewAuthServer создает новый экземпляр AuthServer с указанным сервисом аутентификации и логгером.
func NewAuthServer(authService AuthService, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		authService: authService,
		log:         logger,
	}
}

// Register создает нового пользователя
func (s *AuthServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in auth.RegisterInput
	if err := authpb.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed register request")
	}
	s.log.Info("Register request", slog.String("username", in.Username))

	user, err := s.authService.Register(ctx, in)
	if err != nil {
		s.log.Error("Register failed", slog.String("username", in.Username), sl.Err(err))
		return nil, toStatus(err)
	}
	return encode(user)
}

// Login проверяет пользователя и генерирует JWT
func (s *AuthServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in authpb.LoginRequest
	if err := authpb.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed login request")
	}
	s.log.Info("Login request", slog.String("email", in.Email))

	result, err := s.authService.Login(ctx, in.Email, in.Password)
	if err != nil {
		s.log.Error("Login failed", slog.String("email", in.Email), sl.Err(err))
		return nil, toStatus(err)
	}
	return encode(result)
}

// ValidateToken проверяет валидность JWT и возвращает данные пользователя
func (s *AuthServer) ValidateToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	claims, err := s.authService.ValidateToken(ctx, req.GetValue())
	if err != nil {
		s.log.Debug("Invalid token", sl.Err(err))
		return nil, toStatus(err)
	}
	return encode(authpb.Claims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		FullName: claims.FullName,
	})
}

func encode(v any) (*structpb.Struct, error) {
	out, err := authpb.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

var kindCodes = map[apperr.Kind]codes.Code{
	apperr.KindInvalidInput: codes.InvalidArgument,
	apperr.KindUnauthorized: codes.Unauthenticated,
	apperr.KindNotFound:     codes.NotFound,
	apperr.KindConflict:     codes.AlreadyExists,
	apperr.KindGone:         codes.FailedPrecondition,
	apperr.KindUpstream:     codes.Unavailable,
	apperr.KindInternal:     codes.Internal,
}

// toStatus переводит ошибку сервиса в статус gRPC. Текст внутренних ошибок не передается.
func toStatus(err error) error {
	kind := apperr.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = codes.Internal
	}
	if kind == apperr.KindInternal || kind == apperr.KindUpstream {
		return status.Error(code, "internal error")
	}
	return status.Error(code, apperr.Message(err))
}
