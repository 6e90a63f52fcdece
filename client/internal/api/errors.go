package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnauthenticated means the token is missing, invalid or expired.
	ErrUnauthenticated = errors.New("api: not authenticated")
	// ErrAlreadyBooked means the slot was taken by someone else.
	ErrAlreadyBooked = errors.New("api: slot already booked")
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// Is lets callers match the two errors the CLI treats specially.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized && e.Code != "invalid_credentials"
	case ErrAlreadyBooked:
		return e.Code == "already_booked"
	}
	return false
}

func parseError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if gjson.ValidBytes(body) {
		apiErr.Code = gjson.GetBytes(body, "error").String()
		apiErr.Message = gjson.GetBytes(body, "message").String()
	}
	return apiErr
}
