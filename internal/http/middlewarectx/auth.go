// Package middlewarectx содержит HTTP middleware приложения.
//
// JWTMiddleware проверяет токен из заголовка Authorization или cookie accessToken
// через gRPC-сервис авторизации и кладет данные пользователя в контекст запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ для данных пользователя в контексте.
const User Key = "user"

// AccessTokenCookie имя cookie с токеном доступа.
const AccessTokenCookie = "accessToken"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*authpb.Claims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен доступа.
//
// Если токен валиден, данные пользователя добавляются в контекст запроса,
// иначе возвращается 401 Unauthorized.
func JWTMiddleware(authClient Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := bearerToken(r)
			if token == "" {
				log.Info("missing access token")
				response.Error(w, r, http.StatusUnauthorized, "unauthorized request")
				return
			}

			claims, err := authClient.ValidateToken(r.Context(), token)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.Error(w, r, http.StatusUnauthorized, "invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), User, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// UserFromContext возвращает данные пользователя, положенные JWTMiddleware.
func UserFromContext(ctx context.Context) (*authpb.Claims, bool) {
	claims, ok := ctx.Value(User).(*authpb.Claims)
	return claims, ok && claims != nil && claims.UserID != ""
}

// WithUser кладет данные пользователя в контекст.
func WithUser(ctx context.Context, claims *authpb.Claims) context.Context {
	return context.WithValue(ctx, User, claims)
}
