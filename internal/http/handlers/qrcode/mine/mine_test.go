package mine

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListForUser(ctx context.Context, userID string) ([]*models.QRCode, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).([]*models.QRCode)
	return resp, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ListForUser", mock.Anything, "user-1").Return([]*models.QRCode{{QRID: "a"}, {QRID: "b"}}, nil)
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	req := httptest.NewRequest(http.MethodGet, "/qr/mine", nil)
	req = req.WithContext(middlewarectx.WithUser(req.Context(), &authpb.Claims{UserID: "user-1"}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.QRCode `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr/mine", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
