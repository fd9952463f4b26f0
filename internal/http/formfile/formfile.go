// Package formfile читает файл из multipart-запроса.
package formfile

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
)

// memoryLimit часть формы, которая держится в памяти, остальное пишется во временные файлы.
const memoryLimit = 1 << 20

// ErrNotMultipart запрос не является multipart/form-data или поврежден.
var ErrNotMultipart = errors.New("request is not a valid multipart form")

// Read разбирает форму и возвращает файл из поля field. Если поле отсутствует,
// возвращается nil без ошибки. Вызывающий обязан вызвать cleanup.
func Read(w http.ResponseWriter, r *http.Request, field string, maxSize int64) (*upload.File, func(), error) {
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+memoryLimit)
	}
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		return nil, func() {}, fmt.Errorf("%w: %w", ErrNotMultipart, err)
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, cleanup, nil
	}
	if err != nil {
		return nil, cleanup, fmt.Errorf("%w: %w", ErrNotMultipart, err)
	}

	return &upload.File{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	}, closeWith(cleanup, file), nil
}

func closeWith(cleanup func(), f multipart.File) func() {
	return func() {
		_ = f.Close()
		cleanup()
	}
}
