package login

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/apperr"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
)

type AuthClientMock struct {
	mock.Mock
}

func (m *AuthClientMock) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*auth.LoginResult)
	return resp, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthClientMock)
	authMock.On("Login", mock.Anything, "a@x.com", "secret1").Return(&auth.LoginResult{
		User:         models.PublicUser{ID: "user-1", Email: "a@x.com"},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}, nil)
	authMock.On("Login", mock.Anything, "a@x.com", "wrong").Return(nil, apperr.Unauthorized("invalid user credentials"))
	authMock.On("Login", mock.Anything, "ghost@x.com", "secret1").Return(nil, apperr.NotFound("user does not exist"))

	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), authMock)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"email":"a@x.com","password":"secret1"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"email":"a@x.com","password":"wrong"}`, wantStatus: http.StatusUnauthorized},
		{name: "unknown user", body: `{"email":"ghost@x.com","password":"secret1"}`, wantStatus: http.StatusNotFound},
		{name: "missing password", body: `{"email":"a@x.com"}`, wantStatus: http.StatusBadRequest},
		{name: "not json", body: `email=a@x.com`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Empty(t, w.Result().Cookies())
				return
			}

			var body struct {
				Data auth.LoginResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "access", body.Data.AccessToken)
			assert.Equal(t, "refresh", body.Data.RefreshToken)

			cookies := map[string]*http.Cookie{}
			for _, c := range w.Result().Cookies() {
				cookies[c.Name] = c
			}
			require.Contains(t, cookies, "accessToken")
			require.Contains(t, cookies, RefreshTokenCookie)
			assert.True(t, cookies["accessToken"].HttpOnly)
			assert.Equal(t, "refresh", cookies[RefreshTokenCookie].Value)
		})
	}
}
