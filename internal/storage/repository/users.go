package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

const userColumns = `id, username, email, full_name, password_hash, account_type,
	avatar, cover_image, location_type, longitude, latitude, refresh_token,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u        models.User
		lng, lat float64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.AccountType, &u.Avatar, &u.CoverImage, &u.Location.Type, &lng, &lat,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Location.Coordinates = []float64{lng, lat}
	return &u, nil
}

// CreateUser сохраняет нового пользователя и возвращает сохранённую запись.
// При совпадении username или email возвращает ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var lng, lat float64
	if len(user.Location.Coordinates) == 2 {
		lng, lat = user.Location.Coordinates[0], user.Location.Coordinates[1]
	}
	query := `INSERT INTO users (username, email, full_name, password_hash, account_type,
			      avatar, cover_image, location_type, longitude, latitude)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns
	created, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.AccountType,
		user.Avatar, user.CoverImage, user.Location.Type, lng, lat))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// FindUserByID возвращает пользователя по его ID.
func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.FindUserByID"
	return s.findUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindUserByEmail возвращает пользователя по почте.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	return s.findUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Storage) findUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// SearchUsersByUsername ищет пользователей, чей username содержит fragment без учета регистра.
func (s *Storage) SearchUsersByUsername(ctx context.Context, fragment string) ([]*models.User, error) {
	const op = "storage.SearchUsersByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(fragment)
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username ILIKE '%' || $1 || '%'
			  ORDER BY username`
	rows, err := s.DB.QueryContext(ctx, query, escaped)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserDetails обновляет имя, почту и тип учетной записи.
func (s *Storage) UpdateUserDetails(ctx context.Context, id, fullName, email, accountType string) (*models.User, error) {
	const op = "storage.UpdateUserDetails"
	query := `UPDATE users
			  SET full_name = $1, email = $2, account_type = $3, updated_at = NOW()
			  WHERE id = $4
			  RETURNING ` + userColumns
	return s.updateUser(ctx, op, query, fullName, email, accountType, id)
}

// UpdateAvatar сохраняет новый URL аватара.
func (s *Storage) UpdateAvatar(ctx context.Context, id, url string) (*models.User, error) {
	const op = "storage.UpdateAvatar"
	query := `UPDATE users SET avatar = $1, updated_at = NOW()
			  WHERE id = $2
			  RETURNING ` + userColumns
	return s.updateUser(ctx, op, query, url, id)
}

// UpdateCoverImage сохраняет новый URL обложки.
func (s *Storage) UpdateCoverImage(ctx context.Context, id, url string) (*models.User, error) {
	const op = "storage.UpdateCoverImage"
	query := `UPDATE users SET cover_image = $1, updated_at = NOW()
			  WHERE id = $2
			  RETURNING ` + userColumns
	return s.updateUser(ctx, op, query, url, id)
}

func (s *Storage) updateUser(ctx context.Context, op, query string, args ...any) (*models.User, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// UpdatePassword сохраняет новый хэш пароля.
func (s *Storage) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const op = "storage.UpdatePassword"
	return s.execOne(ctx, op, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
}

// UpdateRefreshToken сохраняет токен обновления; пустая строка очищает его.
func (s *Storage) UpdateRefreshToken(ctx context.Context, id, token string) error {
	const op = "storage.UpdateRefreshToken"
	return s.execOne(ctx, op, `UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`,
		token, id)
}

func (s *Storage) execOne(ctx context.Context, op, query string, args ...any) error {
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
