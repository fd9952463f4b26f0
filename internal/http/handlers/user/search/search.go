// Package search реализует HTTP-обработчик поиска пользователей по имени.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// Service ищет пользователей.
type Service interface {
	SearchByUsername(ctx context.Context, fragment string) ([]models.PublicUser, error)
}

// Handler обрабатывает GET /users/getUserByName/{username}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск пользователей
// @Description Поиск по подстроке имени пользователя без учета регистра.
// @Tags Users
// @Produce json
// @Param username path string true "Подстрока имени"
// @Success 200 {object} response.Response{data=[]models.PublicUser}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/getUserByName/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.SearchByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, http.StatusOK, users, "Users fetched successfully")
}
