// Package mine реализует HTTP-обработчик списка QR-кодов текущего пользователя.
package mine

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// Service описывает выборку QR-кодов владельца.
type Service interface {
	ListForUser(ctx context.Context, userID string) ([]*models.QRCode, error)
}

// Handler обрабатывает GET /qr/mine.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои QR-коды
// @Tags QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.QRCode}
// @Failure 401 {object} response.ErrorResponse
// @Router /qr/mine [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.mine"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "unauthorized request")
		return
	}

	codes, err := h.service.ListForUser(r.Context(), user.UserID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusOK, codes, "QR codes fetched successfully")
}
