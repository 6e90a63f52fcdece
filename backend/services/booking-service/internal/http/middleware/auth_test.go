package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"evcharge/backend/services/booking-service/internal/service"
)

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(strconv.FormatInt(id, 10) + ":" + UsernameFromContext(r.Context())))
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	valid, err := tokens.GenerateToken(7, "alice")
	require.NoError(t, err)
	foreign, err := service.NewTokenService("other", time.Hour).GenerateToken(7, "alice")
	require.NoError(t, err)

	handler := Authenticate(tokens)(whoAmI())

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/bookings/user", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "7:alice", rec.Body.String())
				return
			}
			assert.Equal(t, "unauthenticated", gjson.Get(rec.Body.String(), "error").String())
		})
	}
}

func TestAuthenticateQueryToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	valid, err := tokens.GenerateToken(3, "bob")
	require.NoError(t, err)

	strict := Authenticate(tokens)(whoAmI())
	lenient := Authenticate(tokens, AllowQueryToken())(whoAmI())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/events?token="+valid, nil)
	rec := httptest.NewRecorder()
	strict.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	lenient.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3:bob", rec.Body.String())
}

func TestUserIDFromContextOutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
