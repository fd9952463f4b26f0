package generate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Generate(ctx context.Context, userID string, validTill time.Time) (*models.QRCode, error) {
	args := m.Called(ctx, userID, validTill)
	resp, _ := args.Get(0).(*models.QRCode)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	validTill := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		user       *authpb.Claims
		setup      func(s *ServiceMock)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"validTill":"2026-12-31T23:00:00Z"}`,
			user: &authpb.Claims{UserID: "user-1"},
			setup: func(s *ServiceMock) {
				s.On("Generate", mock.Anything, "user-1", mock.MatchedBy(validTill.Equal)).
					Return(&models.QRCode{ID: "id-1", UserID: "user-1", QRID: "code", ValidTill: validTill}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing validTill",
			body:       `{}`,
			user:       &authpb.Claims{UserID: "user-1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed validTill",
			body:       `{"validTill":"tomorrow"}`,
			user:       &authpb.Claims{UserID: "user-1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated",
			body:       `{"validTill":"2026-12-31T23:00:00Z"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "user gone",
			body: `{"validTill":"2026-12-31T23:00:00Z"}`,
			user: &authpb.Claims{UserID: "ghost"},
			setup: func(s *ServiceMock) {
				s.On("Generate", mock.Anything, "ghost", mock.Anything).Return(nil, apperr.NotFound("user not found"))
			},
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/qr/generate", strings.NewReader(tt.body))
			if tt.user != nil {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.setup == nil {
				svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
			}
			if tt.wantStatus == http.StatusCreated {
				var body struct {
					Data models.QRCode `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "code", body.Data.QRID)
				assert.Equal(t, "user-1", body.Data.UserID)
			}
		})
	}
}
