package repository

import "errors"

var (
	// ErrUserNotFound represents missing user rows.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the username unique constraint fires.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrSlotAlreadyBooked is returned when the (station, date, time slot) constraint fires.
	ErrSlotAlreadyBooked = errors.New("slot already booked")
	// ErrStationNotFound is returned when a booking references a missing station.
	ErrStationNotFound = errors.New("station not found")
)

// Constraint names declared in the schema migrations.
const (
	constraintUsername       = "users_username_key"
	constraintBookingSlot    = "bookings_slot_key"
	constraintBookingStation = "bookings_station_id_fkey"
	constraintBookingUser    = "bookings_user_id_fkey"
)
