package models

// Notification письмо для отправки владельцу QR-кода.
// Передается от рассылки к отправителю, в очереди сериализуется в JSON.
type Notification struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	QRID    string `json:"qr_id"`
}
