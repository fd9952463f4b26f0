// Package health реализует проверку готовности API.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
)

// Checker проверяет доступность зависимости.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает Handler. checker может быть nil.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{log: log, checker: checker}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.checker.CheckDatabaseReady(ctx); err != nil {
			h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
			response.Error(w, r, http.StatusServiceUnavailable, "database is not ready")
			return
		}
	}
	response.OK(w, r, http.StatusOK, map[string]string{"status": "ok"}, "Healthy")
}
