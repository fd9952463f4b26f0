// Package forqrcode реализует HTTP-обработчик выдачи фотографий QR-кода.
package forqrcode

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
)

// Request тело запроса.
type Request struct {
	QRID string `json:"qrId" validate:"required"`
}

// Service описывает выдачу фотографий.
type Service interface {
	ListForQRCode(ctx context.Context, qrID string) (*models.QRCodePhotos, error)
}

// Handler обрабатывает POST /photo/forQRCode.
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
// @Summary Фотографии QR-кода
// @Description Возвращает QR-код, его фотографии, имя и почту владельца.
// @Tags Photo
// @Accept json
// @Produce json
// @Param request body Request true "Внешний код"
// @Success 200 {object} response.Response{data=models.QRCodePhotos}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /photo/forQRCode [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.photo.forqrcode"
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

	result, err := h.service.ListForQRCode(r.Context(), req.QRID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusOK, result, "Photos fetched successfully")
}
