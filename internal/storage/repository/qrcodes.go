package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

const qrColumns = `id, user_id, qr_id, valid_till, visitor_count, created_at, updated_at`

func scanQRCode(row rowScanner) (*models.QRCode, error) {
	var q models.QRCode
	if err := row.Scan(&q.ID, &q.UserID, &q.QRID, &q.ValidTill, &q.VisitorCount,
		&q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQRCode сохраняет QR-код. Если qr_id уже занят, возвращает ErrDuplicate,
// если владельца не существует, возвращает ErrNotFound.
func (s *Storage) CreateQRCode(ctx context.Context, qr models.QRCode) (*models.QRCode, error) {
	const op = "storage.CreateQRCode"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO qr_codes (user_id, qr_id, valid_till)
			  VALUES ($1, $2, $3)
			  RETURNING ` + qrColumns
	created, err := scanQRCode(s.DB.QueryRowContext(ctx, query, qr.UserID, qr.QRID, qr.ValidTill))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// FindQRCodeByQRID возвращает QR-код по внешнему коду.
func (s *Storage) FindQRCodeByQRID(ctx context.Context, qrID string) (*models.QRCode, error) {
	const op = "storage.FindQRCodeByQRID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE qr_id = $1`
	q, err := scanQRCode(s.DB.QueryRowContext(ctx, query, qrID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return q, nil
}

// FindQRCodesByUser возвращает QR-коды пользователя, новые первыми.
func (s *Storage) FindQRCodesByUser(ctx context.Context, userID string) ([]*models.QRCode, error) {
	const op = "storage.FindQRCodesByUser"
	query := `SELECT ` + qrColumns + `
			  FROM qr_codes
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	return s.listQRCodes(ctx, op, query, userID)
}

// FindExpiredQRCodes возвращает QR-коды, у которых valid_till строго раньше now.
func (s *Storage) FindExpiredQRCodes(ctx context.Context, now time.Time) ([]*models.QRCode, error) {
	const op = "storage.FindExpiredQRCodes"
	query := `SELECT ` + qrColumns + `
			  FROM qr_codes
			  WHERE valid_till < $1
			  ORDER BY valid_till`
	return s.listQRCodes(ctx, op, query, now)
}

func (s *Storage) listQRCodes(ctx context.Context, op, query string, arg any) ([]*models.QRCode, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.QRCode
	for rows.Next() {
		q, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
