package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/models"
)

// Authenticator signs users up and in.
type Authenticator interface {
	Signup(ctx context.Context, username, password string) (string, *models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// AuthHandlers serves /api/auth.
type AuthHandlers struct {
	auth   Authenticator
	logger *zap.Logger
}

// NewAuthHandlers returns handler.
func NewAuthHandlers(auth Authenticator, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid JSON body")
		return
	}

	token, user, err := h.auth.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid JSON body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username},
	})
}
