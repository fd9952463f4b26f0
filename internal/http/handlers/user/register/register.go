// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Запрос валидируется и передается gRPC-сервису авторизации.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

// Request входные данные регистрации.
type Request struct {
	Username    string          `json:"username" validate:"required,min=3,max=50"`
	Email       string          `json:"email" validate:"required,email"`
	FullName    string          `json:"fullName" validate:"required"`
	Password    string          `json:"password" validate:"required,min=6,max=72"`
	AccountType string          `json:"accountType" validate:"omitempty,oneof=Customer Restaurant"`
	Location    models.Location `json:"location"`
}

// Service клиент сервиса авторизации.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.PublicUser, error)
}

// Handler обрабатывает POST /users/registerUser.
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
// @Summary Регистрация пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} response.Response{data=models.PublicUser}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users/registerUser [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
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
	if err := auth.ValidateLocation(req.Location); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	user, err := h.authClient.Register(r.Context(), auth.RegisterInput(req))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	response.OK(w, r, http.StatusCreated, user, "User registered successfully")
}
