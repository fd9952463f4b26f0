package models

import "time"

// Метки загрузившего фотографию.
const (
	UploadedByOwner = "Owner"
	UploadedByGuest = "Guest"
)

// Photo фотография, привязанная к QR-коду.
type Photo struct {
	ID         string    `json:"_id"`
	QRCodeID   string    `json:"qrCodeId"`
	PhotoURL   string    `json:"photoUrl"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// QRCodePhotos QR-код вместе с фотографиями и контактами владельца.
// Из данных владельца проецируются только имя и почта.
type QRCodePhotos struct {
	QRCode
	Photos     []Photo `json:"photos"`
	OwnerName  string  `json:"ownerName"`
	OwnerEmail string  `json:"ownerEmail"`
}
