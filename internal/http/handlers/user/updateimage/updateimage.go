// Package updateimage реализует HTTP-обработчики смены аватара и обложки.
package updateimage

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/formfile"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// UpdateFunc сохраняет изображение пользователя.
type UpdateFunc func(ctx context.Context, userID string, f *upload.File) (*models.PublicUser, error)

// Handler обрабатывает PATCH /users/updateUserAvatar и /users/updateCoverImage.
type Handler struct {
	log     *slog.Logger
	field   string
	update  UpdateFunc
	maxSize int64
}

// New создает Handler, читающий файл из поля field.
func New(log *slog.Logger, field string, update UpdateFunc, maxSize int64) *Handler {
	return &Handler{log: log, field: field, update: update, maxSize: maxSize}
}

// ServeHTTP godoc
// @Summary Смена аватара или обложки
// @Description Файл передается в поле avatar или coverImage multipart-формы.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file false "Аватар"
// @Param coverImage formData file false "Обложка"
// @Success 200 {object} response.Response{data=models.PublicUser}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users/updateUserAvatar [patch]
// @Router /users/updateCoverImage [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updateimage"
	log := h.log.With(
		slog.String("op", op),
		slog.String("field", h.field),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "unauthorized request")
		return
	}

	file, cleanup, err := formfile.Read(w, r, h.field, h.maxSize)
	defer cleanup()
	if err != nil {
		log.Info("failed to parse multipart form", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	user, err := h.update(r.Context(), claims.UserID, file)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, http.StatusOK, user, "Image updated successfully")
}
