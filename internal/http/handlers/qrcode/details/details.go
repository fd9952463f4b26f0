// Package details реализует HTTP-обработчик получения QR-кода по внешнему коду.
package details

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

// Service описывает получение QR-кода.
type Service interface {
	Details(ctx context.Context, qrID string) (*models.QRCode, error)
}

// Handler обрабатывает GET /qr/details.
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
// @Summary Данные QR-кода
// @Description Возвращает QR-код по внешнему коду qrId из тела запроса или параметра запроса.
// @Tags QR
// @Accept json
// @Produce json
// @Param request body Request false "Внешний код"
// @Param qrId query string false "Внешний код"
// @Success 200 {object} response.Response{data=models.QRCode}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /qr/details [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.details"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Info("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QRID == "" {
		req.QRID = r.URL.Query().Get("qrId")
	}
	if err := h.validate.Struct(req); err != nil {
		response.Invalid(w, r, err)
		return
	}

	qr, err := h.service.Details(r.Context(), req.QRID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusOK, qr, "QR code details fetched successfully")
}
