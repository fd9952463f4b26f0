// Package jwt реализует генерацию и парсинг JWT токенов доступа и обновления.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken выпускает короткоживущий токен доступа.
	GenerateAccessToken(subject Subject) (string, error)
	// GenerateRefreshToken выпускает токен обновления, содержащий только ID пользователя.
	GenerateRefreshToken(userID string) (string, error)
	// ParseAccessToken проверяет подпись и срок действия токена доступа.
	ParseAccessToken(tokenStr string) (*AccessClaims, error)
	// ParseRefreshToken проверяет подпись и срок действия токена обновления.
	ParseRefreshToken(tokenStr string) (*RefreshClaims, error)
}

// MakerImpl реализует Maker с отдельными секретами и TTL для двух видов токенов.
type MakerImpl struct {
	accessSecret  string
	accessTTL     time.Duration
	refreshSecret string
	refreshTTL    time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
func NewJWTMaker(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecret:  accessSecret,
		accessTTL:     accessTTL,
		refreshSecret: refreshSecret,
		refreshTTL:    refreshTTL,
	}
}
