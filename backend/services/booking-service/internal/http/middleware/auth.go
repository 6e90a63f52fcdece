package middleware

import (
	"context"
	"net/http"
	"strings"

	"evcharge/backend/services/booking-service/internal/service"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	usernameKey contextKey = "username"
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

type authOptions struct {
	queryToken bool
}

// AuthOption customises Authenticate.
type AuthOption func(*authOptions)

// AllowQueryToken also accepts the token from the "token" query parameter.
// Browsers cannot set headers on WebSocket handshakes.
func AllowQueryToken() AuthOption {
	return func(o *authOptions) { o.queryToken = true }
}

// Authenticate validates JWT tokens and stores the user in the request context.
func Authenticate(validator TokenValidator, opts ...AuthOption) func(http.Handler) http.Handler {
	var options authOptions
	for _, opt := range opts {
		opt(&options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok && options.queryToken {
				token = strings.TrimSpace(r.URL.Query().Get("token"))
				ok = token != ""
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or malformed authorization")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserIDFromContext retrieves userID from request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id != 0
}

// UsernameFromContext retrieves the authenticated username.
func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
