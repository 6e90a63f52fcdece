package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/http/middleware"
	"evcharge/backend/services/booking-service/internal/service"
)

const maxBodyBytes = 1 << 20

// Error codes returned in the "error" field.
const (
	CodeInvalidInput       = "invalid_input"
	CodeDuplicateUsername  = "duplicate_username"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeUnknownStation     = "unknown_station"
	CodeInvalidDate        = "invalid_date"
	CodeInvalidTimeSlot    = "invalid_time_slot"
	CodeAlreadyBooked      = "already_booked"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeInternal           = "internal"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps service errors to status codes. Unknown errors are
// logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Missing or invalid request fields")
	case errors.Is(err, service.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, CodeDuplicateUsername, "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, service.ErrUnknownStation):
		writeError(w, http.StatusBadRequest, CodeUnknownStation, "Charging station not found")
	case errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, CodeInvalidDate, "Date must be YYYY-MM-DD and not in the past")
	case errors.Is(err, service.ErrInvalidTimeSlot):
		writeError(w, http.StatusBadRequest, CodeInvalidTimeSlot, "Time slot must be an hourly slot between 00:00 and 23:00")
	case errors.Is(err, service.ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "Account no longer exists")
	case errors.Is(err, service.ErrAlreadyBooked):
		writeError(w, http.StatusBadRequest, CodeAlreadyBooked, "This slot is already booked")
	default:
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireUser reads the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "Authentication required")
		return 0, false
	}
	return userID, true
}

// NotFound renders unknown routes as JSON.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Route not found")
}

// MethodNotAllowed renders method mismatches as JSON.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
}
