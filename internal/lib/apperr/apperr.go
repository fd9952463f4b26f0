// Package apperr описывает типизированные ошибки прикладного уровня
// и их соответствие HTTP статусам.
package apperr

import (
	"errors"
	"net/http"
)

// Kind вид прикладной ошибки.
type Kind int

const (
	// KindInternal непредвиденная внутренняя ошибка.
	KindInternal Kind = iota
	// KindInvalidInput некорректные входные данные.
	KindInvalidInput
	// KindUnauthorized отсутствует или неверна аутентификация.
	KindUnauthorized
	// KindNotFound запись не найдена.
	KindNotFound
	// KindConflict запись уже существует.
	KindConflict
	// KindGone запись существует, но срок её действия истек.
	KindGone
	// KindUpstream ошибка внешнего сервиса (загрузка файлов, почта, брокер).
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindGone:
		return "gone"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// HTTPStatus возвращает HTTP статус для вида ошибки.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// Error прикладная ошибка: вид, сообщение для клиента и исходная причина.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создает ошибку без причины.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap создает ошибку с исходной причиной.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func InvalidInput(msg string) *Error { return New(KindInvalidInput, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }
func Gone(msg string) *Error         { return New(KindGone, msg) }

func Upstream(msg string, err error) *Error { return Wrap(KindUpstream, msg, err) }
func Internal(msg string, err error) *Error { return Wrap(KindInternal, msg, err) }

// KindOf возвращает вид ошибки; для ошибок вне пакета KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is сообщает, является ли ошибка прикладной ошибкой указанного вида.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Message возвращает текст для клиента: Msg прикладной ошибки или err.Error() для прочих.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return err.Error()
}
