package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для токенов с неверной подписью, сроком или структурой.
var ErrInvalidToken = errors.New("invalid token")

// Subject данные пользователя, которые попадают в токен доступа.
type Subject struct {
	UserID   string
	Email    string
	Username string
	FullName string
}

// AccessClaims claims токена доступа.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims claims токена обновления.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken создает токен доступа, подписанный HS256.
func (j *MakerImpl) GenerateAccessToken(subject Subject) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   subject.UserID,
		Email:    subject.Email,
		Username: subject.Username,
		FullName: subject.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.accessSecret))
}

// GenerateRefreshToken создает токен обновления, подписанный отдельным секретом.
func (j *MakerImpl) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.refreshSecret))
}

// ParseAccessToken парсит токен доступа и возвращает его claims.
func (j *MakerImpl) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	const op = "jwt.ParseAccessToken"
	claims := &AccessClaims{}
	if err := parse(tokenStr, claims, j.accessSecret); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

// ParseRefreshToken парсит токен обновления и возвращает его claims.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	const op = "jwt.ParseRefreshToken"
	claims := &RefreshClaims{}
	if err := parse(tokenStr, claims, j.refreshSecret); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

func parse(tokenStr string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
