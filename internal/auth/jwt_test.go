package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, err := iss.GenerateToken("student-1", "ana@x.com")
	require.NoError(t, err)

	claims, err := iss.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.StudentID())
	assert.Equal(t, "ana@x.com", claims.Email)
}

func TestValidateTokenRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	foreign, err := other.GenerateToken("student-1", "ana@x.com")
	require.NoError(t, err)
	_, err = iss.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewIssuer("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("student-1", "ana@x.com")
	require.NoError(t, err)
	_, err = iss.ValidateToken(old)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestInspect(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, err := iss.GenerateToken("student-9", "bia@x.com")
	require.NoError(t, err)

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "student-9", claims.StudentID())
	assert.Equal(t, "bia@x.com", claims.Email)
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(time.Now().Add(2*time.Hour)))

	_, err = Inspect("T1")
	assert.ErrorIs(t, err, ErrNotJWT)

	_, err = Inspect("a.b.c")
	assert.ErrorIs(t, err, ErrNotJWT)
}

func TestMiddleware(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, err := iss.GenerateToken("student-1", "ana@x.com")
	require.NoError(t, err)

	var seen string
	handler := iss.Middleware(func(w http.ResponseWriter, status int, message string) {
		http.Error(w, message, status)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = StudentIDFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "student-1", seen)
			}
		})
	}
}
