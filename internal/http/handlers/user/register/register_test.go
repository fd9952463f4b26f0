package register

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

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

type AuthClientMock struct {
	mock.Mock
}

func (m *AuthClientMock) Register(ctx context.Context, in auth.RegisterInput) (*models.PublicUser, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*models.PublicUser)
	return resp, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	const validBody = `{"username":"alice","email":"a@x.com","fullName":"Alice","password":"secret1",
		"location":{"type":"Point","coordinates":[77.2,28.6]}}`

	tests := []struct {
		name       string
		body       string
		mockErr    error
		callsAuth  bool
		wantStatus int
	}{
		{name: "created", body: validBody, callsAuth: true, wantStatus: http.StatusCreated},
		{name: "conflict", body: validBody, mockErr: apperr.Conflict("user with email or username already exists"), callsAuth: true, wantStatus: http.StatusConflict},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad email", body: strings.Replace(validBody, "a@x.com", "nope", 1), wantStatus: http.StatusBadRequest},
		{name: "short password", body: strings.Replace(validBody, "secret1", "123", 1), wantStatus: http.StatusBadRequest},
		{name: "bad account type", body: strings.Replace(validBody, `"password"`, `"accountType":"Admin","password"`, 1), wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", body: strings.Replace(validBody, "28.6", "95", 1), wantStatus: http.StatusBadRequest},
		{name: "missing location", body: `{"username":"alice","email":"a@x.com","fullName":"Alice","password":"secret1"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthClientMock)
			if tt.callsAuth {
				if tt.mockErr != nil {
					authMock.On("Register", mock.Anything, mock.Anything).Return(nil, tt.mockErr)
				} else {
					authMock.On("Register", mock.Anything, mock.MatchedBy(func(in auth.RegisterInput) bool {
						return in.Username == "alice" && in.Location.Coordinates[1] == 28.6
					})).Return(&models.PublicUser{ID: "user-1", Username: "alice"}, nil)
				}
			}

			w := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), authMock).
				ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/registerUser", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			if !tt.callsAuth {
				authMock.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			}
		})
	}
}
