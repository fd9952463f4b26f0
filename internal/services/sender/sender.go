// Package sender доставляет уведомления по электронной почте.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/smtp"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// ErrNoRecipient у уведомления не указан получатель.
var ErrNoRecipient = errors.New("notification has no recipient")

// DefaultSendTimeout ограничение SMTP-сессии для сообщений из очереди.
const DefaultSendTimeout = 30 * time.Second

// SenderService отправляет HTML письма через SMTP транспорт.
type SenderService struct {
	transport   smtp.TransportInterface
	log         *slog.Logger
	sendTimeout time.Duration
}

// NewSenderService создает новый экземпляр SenderService. sendTimeout ограничивает
// отправку одного сообщения из очереди; при sendTimeout <= 0 используется DefaultSendTimeout.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface, sendTimeout time.Duration) *SenderService {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &SenderService{
		transport:   transport,
		log:         log,
		sendTimeout: sendTimeout,
	}
}

// HandleMessage обрабатывает сообщение из очереди дайджестов.
func (s *SenderService) HandleMessage(body []byte) error {
	const op = "sender.HandleMessage"
	var n models.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()
	return s.Send(ctx, n)
}

// Send отправляет уведомление одному получателю.
func (s *SenderService) Send(ctx context.Context, n models.Notification) error {
	const op = "sender.Send"
	log := s.log.With(slog.String("op", op), slog.String("to", n.To), slog.String("qr_id", n.QRID))

	if strings.TrimSpace(n.To) == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + n.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", n.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		n.Body,
	}, "\r\n")

	client, err := s.transport.Connect(ctx)
	if err != nil {
		log.Error("failed to connect to SMTP server", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(from); err != nil {
		log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Rcpt(n.To); err != nil {
		log.Error("failed to set RCPT TO", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	wc, err := client.Data()
	if err != nil {
		log.Error("failed to get data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		log.Error("failed to write email body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		log.Error("failed to close data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Quit(); err != nil {
		log.Warn("failed to quit SMTP client", sl.Err(err))
	}

	log.Info("email sent successfully")
	return nil
}
