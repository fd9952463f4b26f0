package repository

import (
	"context"
	"fmt"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// CreatePhoto сохраняет фотографию, привязанную к QR-коду по внутреннему ID.
func (s *Storage) CreatePhoto(ctx context.Context, photo models.Photo) (*models.Photo, error) {
	const op = "storage.CreatePhoto"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO photos (qr_code_id, photo_url, uploaded_by)
			  VALUES ($1, $2, $3)
			  RETURNING id, qr_code_id, photo_url, uploaded_by, created_at`
	var p models.Photo
	if err := s.DB.QueryRowContext(ctx, query, photo.QRCodeID, photo.PhotoURL, photo.UploadedBy).
		Scan(&p.ID, &p.QRCodeID, &p.PhotoURL, &p.UploadedBy, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &p, nil
}

// FindPhotosByQR возвращает фотографии QR-кода в порядке загрузки.
func (s *Storage) FindPhotosByQR(ctx context.Context, qrCodeID string) ([]models.Photo, error) {
	const op = "storage.FindPhotosByQR"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, qr_code_id, photo_url, uploaded_by, created_at
			  FROM photos
			  WHERE qr_code_id = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, qrCodeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err = rows.Scan(&p.ID, &p.QRCodeID, &p.PhotoURL, &p.UploadedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
