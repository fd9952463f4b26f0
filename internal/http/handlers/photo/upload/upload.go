// Package upload реализует HTTP-обработчик загрузки фотографии к QR-коду.
package upload

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/formfile"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/response"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/photo"
)

// Service описывает прием фотографии.
type Service interface {
	Upload(ctx context.Context, req photo.UploadRequest) (*models.Photo, error)
}

// Handler обрабатывает POST /photo/upload.
type Handler struct {
	log     *slog.Logger
	service Service
	maxSize int64
}

// New создает Handler. maxSize ограничивает размер файла в байтах.
func New(log *slog.Logger, service Service, maxSize int64) *Handler {
	return &Handler{log: log, service: service, maxSize: maxSize}
}

// ServeHTTP godoc
// @Summary Загрузка фотографии
// @Description Принимает multipart-форму с полями qrId, uploadedBy (Owner или Guest) и file.
// @Tags Photo
// @Accept multipart/form-data
// @Produce json
// @Param qrId formData string true "Внешний код QR"
// @Param uploadedBy formData string false "Owner или Guest"
// @Param file formData file true "Фотография"
// @Success 201 {object} response.Response{data=models.Photo}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /photo/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.photo.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	file, cleanup, err := formfile.Read(w, r, "file", h.maxSize)
	defer cleanup()
	if err != nil {
		log.Info("failed to parse multipart form", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	p, err := h.service.Upload(r.Context(), photo.UploadRequest{
		QRID:       r.FormValue("qrId"),
		UploadedBy: r.FormValue("uploadedBy"),
		File:       file,
	})
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, http.StatusCreated, p, "Photo uploaded successfully")
}
