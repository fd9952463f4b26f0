package validate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Validate(ctx context.Context, qrID string) (*models.QRCodeValidation, error) {
	args := m.Called(ctx, qrID)
	resp, _ := args.Get(0).(*models.QRCodeValidation)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	valid := &models.QRCodeValidation{
		QRCode:  models.QRCode{ID: "id-1", QRID: "live", ValidTill: time.Now().Add(time.Hour)},
		IsValid: true,
	}

	svc := new(ServiceMock)
	svc.On("Validate", mock.Anything, "live").Return(valid, nil)
	svc.On("Validate", mock.Anything, "old").Return(nil, apperr.Gone("qr code has expired"))
	svc.On("Validate", mock.Anything, "missing").Return(nil, apperr.NotFound("qr code not found"))

	router := chi.NewRouter()
	router.Get("/qr/validate/{qrId}", New(newNoopLogger(), svc).ServeHTTP)

	tests := []struct {
		name       string
		qrID       string
		wantStatus int
		wantValid  bool
		wantMsg    string
	}{
		{name: "valid", qrID: "live", wantStatus: http.StatusOK, wantValid: true, wantMsg: "QR code is valid"},
		{name: "expired", qrID: "old", wantStatus: http.StatusGone, wantMsg: "qr code has expired"},
		{name: "missing", qrID: "missing", wantStatus: http.StatusNotFound, wantMsg: "qr code not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr/validate/"+tt.qrID, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantStatus == http.StatusOK {
				data := body["data"].(map[string]any)
				assert.Equal(t, tt.wantValid, data["isValid"])
				assert.Equal(t, "live", data["qrCode"].(map[string]any)["qrId"])
			} else {
				assert.Equal(t, float64(tt.wantStatus), body["statusCode"])
			}
		})
	}
}
