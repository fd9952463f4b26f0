// Package validate реализует HTTP-обработчик проверки срока действия QR-кода.
package validate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// Service описывает проверку QR-кода.
type Service interface {
	Validate(ctx context.Context, qrID string) (*models.QRCodeValidation, error)
}

// Handler обрабатывает GET /qr/validate/{qrId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проверка QR-кода
// @Description 200 если QR-код действует, 410 если истек, 404 если не найден.
// @Tags QR
// @Produce json
// @Param qrId path string true "Внешний код"
// @Success 200 {object} response.Response{data=models.QRCodeValidation}
// @Failure 404 {object} response.ErrorResponse
// @Failure 410 {object} response.ErrorResponse
// @Router /qr/validate/{qrId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.Validate(r.Context(), chi.URLParam(r, "qrId"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusOK, result, "QR code is valid")
}
