package service

import "errors"

// Errors surfaced to the HTTP layer. Handlers map each of them to a status
// code and an error code in one place.
var (
	// ErrInvalidInput covers malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateUsername is returned when signing up with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials represents login failure for unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownStation is returned when a booking references a missing station.
	ErrUnknownStation = errors.New("unknown station")
	// ErrInvalidDate is returned for malformed or past booking dates.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTimeSlot is returned for anything but an hourly slot "HH:00".
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	// ErrUnknownUser is returned when a valid token names an account that no longer exists.
	ErrUnknownUser = errors.New("unknown user")
	// ErrAlreadyBooked is returned when the station, date and slot are taken.
	ErrAlreadyBooked = errors.New("this slot is already booked")
)
