package updatedetails

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateDetails(ctx context.Context, userID, fullName, email, accountType string) (*models.PublicUser, error) {
	args := m.Called(ctx, userID, fullName, email, accountType)
	resp, _ := args.Get(0).(*models.PublicUser)
	return resp, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("UpdateDetails", mock.Anything, "user-1", "Alice", "a@x.com", "Restaurant").
		Return(&models.PublicUser{ID: "user-1", AccountType: "Restaurant"}, nil)
	svc.On("UpdateDetails", mock.Anything, "user-1", "Alice", "taken@x.com", "").
		Return(nil, apperr.Conflict("email is already taken"))
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "updated", body: `{"fullName":"Alice","email":"a@x.com","accountType":"Restaurant"}`, wantStatus: http.StatusOK},
		{name: "email taken", body: `{"fullName":"Alice","email":"taken@x.com"}`, wantStatus: http.StatusConflict},
		{name: "missing name", body: `{"email":"a@x.com"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/users/updateAccountDetails", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithUser(req.Context(), &authpb.Claims{UserID: "user-1"}))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
