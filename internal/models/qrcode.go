package models

import "time"

// QRCode QR-код пользователя со сроком действия.
type QRCode struct {
	ID           string    `json:"_id"`          // Внутренний идентификатор
	UserID       string    `json:"userId"`       // Владелец
	QRID         string    `json:"qrId"`         // Внешний уникальный код
	ValidTill    time.Time `json:"validTill"`    // Момент истечения
	VisitorCount int       `json:"visitorCount"` // Счетчик посетителей
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Expired сообщает, истек ли код к моменту now. Граница строгая:
// в момент ValidTill код уже недействителен.
func (q *QRCode) Expired(now time.Time) bool {
	return !q.ValidTill.After(now)
}

// QRCodeValidation результат проверки QR-кода.
type QRCodeValidation struct {
	QRCode  QRCode `json:"qrCode"`
	IsValid bool   `json:"isValid"`
}
