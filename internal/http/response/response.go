// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков: конверт успешного ответа,
// ответ с ошибкой и сообщения валидации.
package response

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
)

// Response конверт успешного ответа.
type Response struct {
	Status  int    `json:"status" example:"200"`
	Data    any    `json:"data"`
	Message string `json:"message" example:"Success"`
	Success bool   `json:"success" example:"true"`
}

// ErrorResponse ответ с ошибкой. Используется и в аннотациях @Failure.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"invalid request body"`
	Success    bool   `json:"success" example:"false"`
}

// OK пишет успешный ответ с указанным статусом.
func OK(w http.ResponseWriter, r *http.Request, status int, data any, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Response{
		Status:  status,
		Data:    data,
		Message: msg,
		Success: status < http.StatusBadRequest,
	})
}

// Error пишет ответ с ошибкой.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		StatusCode: status,
		Message:    msg,
	})
}

// Fail переводит ошибку сервиса в HTTP-ответ. Причина внутренних ошибок
// только логируется, клиент получает общее сообщение.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()

	switch kind {
	case apperr.KindInternal, apperr.KindUpstream:
		log.Error("request failed", slog.String("kind", kind.String()), sl.Err(err))
		msg := "internal server error"
		if kind == apperr.KindUpstream {
			msg = apperr.Message(err)
		}
		Error(w, r, status, msg)
	default:
		log.Info("request rejected", slog.String("kind", kind.String()), slog.String("reason", apperr.Message(err)))
		Error(w, r, status, apperr.Message(err))
	}
}

// ValidationError формирует текст ошибки на основе нарушений валидации.
// Каждое нарушение формируется в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) string {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}

// Invalid пишет 400 по ошибке валидатора.
func Invalid(w http.ResponseWriter, r *http.Request, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		Error(w, r, http.StatusBadRequest, ValidationError(verrs))
		return
	}
	Error(w, r, http.StatusBadRequest, "invalid request")
}
