// Package login реализует HTTP-обработчик входа пользователя.
//
// Учетные данные проверяются gRPC-сервисом авторизации; токены возвращаются
// в теле ответа и в httpOnly cookie.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

// RefreshTokenCookie имя cookie с токеном обновления.
const RefreshTokenCookie = "refreshToken"

// Request учетные данные.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service клиент сервиса авторизации.
type Service interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
}

// Handler обрабатывает POST /users/login.
type Handler struct {
	log        *slog.Logger
	authClient Service
	validate   *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Возвращает пользователя, токен доступа и токен обновления.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response{data=auth.LoginResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Invalid(w, r, err)
		return
	}

	result, err := h.authClient.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	http.SetCookie(w, tokenCookie(middlewarectx.AccessTokenCookie, result.AccessToken))
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, result.RefreshToken))

	log.Info("login success", slog.String("user_id", result.User.ID))
	response.OK(w, r, http.StatusOK, result, "User logged in successfully")
}

func tokenCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
