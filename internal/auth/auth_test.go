package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/auth"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(now time.Time) *auth.Service {
	return auth.NewService("admin", "s3cret", "signing-key", time.Hour,
		auth.WithClock(func() time.Time { return now }))
}

func TestService_Login(t *testing.T) {
	type testCase struct {
		name     string
		username string
		password string
		wantErr  error
	}

	tests := []testCase{
		{name: "Valid", username: "admin", password: "s3cret"},
		{name: "WrongPassword", username: "admin", password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "WrongUser", username: "root", password: "s3cret", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(fixedNow)

			token, exp, err := svc.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, fixedNow.Add(time.Hour), exp)

			claims, err := svc.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Subject)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestService_Login_Disabled(t *testing.T) {
	svc := auth.NewService("admin", "", "", time.Hour)

	_, _, err := svc.Login("admin", "")
	assert.ErrorIs(t, err, auth.ErrDisabled)
}

func TestService_Verify(t *testing.T) {
	token, _, err := newService(fixedNow).Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = newService(fixedNow.Add(2*time.Hour)).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	other := auth.NewService("admin", "s3cret", "other-key", time.Hour,
		auth.WithClock(func() time.Time { return fixedNow }))
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = newService(fixedNow).Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_Require(t *testing.T) {
	svc := newService(fixedNow)

	token, _, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	handler := svc.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "admin", claims.Subject)
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + token, wantStatus: http.StatusNoContent},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
