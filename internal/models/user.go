// Package models содержит доменные структуры QR-Moments: пользователей,
// QR-коды, фотографии и уведомления. Структуры используются в бизнес-логике,
// хранилище и при сериализации ответов HTTP API.
package models

import "time"

// Типы учетных записей.
const (
	AccountCustomer   = "Customer"
	AccountRestaurant = "Restaurant"
)

// LocationPoint единственный поддерживаемый тип геоточки.
const LocationPoint = "Point"

// Location геоточка в формате GeoJSON: coordinates = [долгота, широта].
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное, в нижнем регистре)
	Email        string    // Электронная почта (уникальная, в нижнем регистре)
	FullName     string    // Полное имя
	PasswordHash string    // Хэш пароля
	AccountType  string    // Customer или Restaurant
	Avatar       string    // URL аватара
	CoverImage   string    // URL обложки
	Location     Location  // Местоположение
	RefreshToken string    // Текущий токен обновления
	CreatedAt    time.Time // Дата создания
	UpdatedAt    time.Time // Дата последнего изменения
}

// PublicUser проекция пользователя без секретов, возвращаемая клиентам.
type PublicUser struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	AccountType string    `json:"accountType"`
	Avatar      string    `json:"avatar,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Location    Location  `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Public возвращает проекцию пользователя без хэша пароля и токена обновления.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		AccountType: u.AccountType,
		Avatar:      u.Avatar,
		CoverImage:  u.CoverImage,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
