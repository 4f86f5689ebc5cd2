package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/pkg/auth"
)

func TestAuthenticateAndRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "pos")
	handler := Authenticate(tokens)(Supervisor(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "sam", claims.Username)
		w.WriteHeader(http.StatusNoContent)
	}))

	supervisor, err := tokens.Generate(1, "sam", auth.RoleSupervisor, time.Hour)
	require.NoError(t, err)
	operator, err := tokens.Generate(2, "olga", auth.RoleOperator, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"operator forbidden", "Bearer " + operator, http.StatusForbidden},
		{"supervisor allowed", "Bearer " + supervisor, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/clients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed", rec.Header().Get("X-Request-ID"))
}
