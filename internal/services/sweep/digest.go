package sweep

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

const digestSubject = "Your QR Moments photos"

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Hello {{.Name}},</p>
<p>Your QR code <strong>{{.QRID}}</strong> has expired. Here are the photos your guests shared:</p>
{{range .URLs}}<p><img src="{{.}}" alt="photo" style="max-width:480px"></p>
{{end}}<p>Thank you for using QR Moments.</p>
</body>
</html>
`))

type digestData struct {
	Name string
	QRID string
	URLs []string
}

// buildDigest собирает HTML письмо с фотографиями истекшего QR-кода.
func buildDigest(owner *models.User, qr *models.QRCode, photos []models.Photo) (models.Notification, error) {
	data := digestData{
		Name: owner.FullName,
		QRID: qr.QRID,
		URLs: make([]string, 0, len(photos)),
	}
	if data.Name == "" {
		data.Name = owner.Username
	}
	for _, p := range photos {
		data.URLs = append(data.URLs, p.PhotoURL)
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return models.Notification{}, fmt.Errorf("sweep.buildDigest: %w", err)
	}
	return models.Notification{
		To:      owner.Email,
		Subject: digestSubject,
		Body:    buf.String(),
		QRID:    qr.QRID,
	}, nil
}
