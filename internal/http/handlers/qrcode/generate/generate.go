// Package generate реализует HTTP-обработчик выпуска QR-кода текущим пользователем.
package generate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// Request тело запроса: момент истечения QR-кода в RFC 3339.
type Request struct {
	ValidTill *time.Time `json:"validTill" validate:"required"`
}

// Service описывает выпуск QR-кода.
type Service interface {
	Generate(ctx context.Context, userID string, validTill time.Time) (*models.QRCode, error)
}

// Handler обрабатывает POST /qr/generate.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Выпуск QR-кода
// @Description Создает QR-код текущего пользователя со сроком действия validTill.
// @Tags QR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Срок действия"
// @Success 201 {object} response.Response{data=models.QRCode}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /qr/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.generate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "unauthorized request")
		return
	}

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

	qr, err := h.service.Generate(r.Context(), user.UserID, *req.ValidTill)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusCreated, qr, "QR code generated successfully")
}
