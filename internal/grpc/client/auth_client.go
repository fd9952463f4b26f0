// Package client gRPC-клиент сервиса авторизации для HTTP API.
package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

// CallTimeout ограничение на один вызов сервиса авторизации.
const CallTimeout = 5 * time.Second

// AuthClient обертка над gRPC-клиентом, возвращающая доменные типы и apperr ошибки.
type AuthClient struct {
	conn   *grpc.ClientConn
	client authpb.AuthServiceClient
}

// NewAuthClient создает клиент. Соединение устанавливается лениво при первом вызове.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	const op = "client.NewAuthClient"

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthClient{conn: conn, client: authpb.NewAuthServiceClient(conn)}, nil
}

// Close закрывает соединение.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

// Register регистрирует пользователя.
func (a *AuthClient) Register(ctx context.Context, in auth.RegisterInput) (*models.PublicUser, error) {
	req, err := authpb.Encode(in)
	if err != nil {
		return nil, apperr.Internal("failed to encode request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}
	var user models.PublicUser
	if err = authpb.Decode(resp, &user); err != nil {
		return nil, apperr.Internal("failed to decode response", err)
	}
	return &user, nil
}

// Login выполняет вход и возвращает пользователя с токенами.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	req, err := authpb.Encode(authpb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, apperr.Internal("failed to encode request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}
	var result auth.LoginResult
	if err = authpb.Decode(resp, &result); err != nil {
		return nil, apperr.Internal("failed to decode response", err)
	}
	return &result, nil
}

// ValidateToken проверяет токен доступа.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*authpb.Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	resp, err := a.client.ValidateToken(ctx, wrapperspb.String(token))
	if err != nil {
		return nil, fromStatus(err)
	}
	var claims authpb.Claims
	if err = authpb.Decode(resp, &claims); err != nil {
		return nil, apperr.Internal("failed to decode response", err)
	}
	return &claims, nil
}

var codeKinds = map[codes.Code]apperr.Kind{
	codes.InvalidArgument:    apperr.KindInvalidInput,
	codes.Unauthenticated:    apperr.KindUnauthorized,
	codes.NotFound:           apperr.KindNotFound,
	codes.AlreadyExists:      apperr.KindConflict,
	codes.FailedPrecondition: apperr.KindGone,
}

// fromStatus переводит статус gRPC обратно в прикладную ошибку.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return apperr.Upstream("auth service unavailable", err)
	}
	if kind, found := codeKinds[st.Code()]; found {
		return apperr.Wrap(kind, st.Message(), err)
	}
	if st.Code() == codes.Internal {
		return apperr.Internal("auth service failure", err)
	}
	return apperr.Upstream("auth service unavailable", err)
}
