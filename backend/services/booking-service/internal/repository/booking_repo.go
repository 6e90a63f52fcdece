package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	libdb "evcharge/backend/libs/db"
	"evcharge/backend/services/booking-service/internal/models"
)

// BookingRepository is the slot ledger: the bookings table and its
// (station_id, date, time_slot) uniqueness guarantee.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository returns repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Insert records a booking in a single statement. A concurrent insert for the
// same slot loses on the bookings_slot_key constraint and gets ErrSlotAlreadyBooked.
func (r *BookingRepository) Insert(ctx context.Context, booking *models.Booking) error {
	const query = `
		INSERT INTO bookings (user_id, station_id, date, time_slot)
		VALUES ($1, $2, $3::date, $4)
		RETURNING id, to_char(date, 'YYYY-MM-DD'), created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.StationID,
		booking.Date,
		booking.TimeSlot,
	).Scan(&booking.ID, &booking.Date, &booking.CreatedAt)
	if err == nil {
		return nil
	}
	if name, ok := libdb.UniqueViolation(err); ok && name == constraintBookingSlot {
		return ErrSlotAlreadyBooked
	}
	if name, ok := libdb.ForeignKeyViolation(err); ok {
		switch name {
		case constraintBookingStation:
			return ErrStationNotFound
		case constraintBookingUser:
			return ErrUserNotFound
		}
	}
	return fmt.Errorf("insert booking: %w", err)
}

// SlotsBooked returns the booked time slots of a station on a date.
func (r *BookingRepository) SlotsBooked(ctx context.Context, stationID int64, date string) ([]models.BookedSlot, error) {
	const query = `
		SELECT to_char(date, 'YYYY-MM-DD') AS date, time_slot
		FROM bookings
		WHERE station_id = $1 AND date = $2::date
		ORDER BY time_slot
	`
	slots := make([]models.BookedSlot, 0)
	if err := r.db.SelectContext(ctx, &slots, query, stationID, date); err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}
	return slots, nil
}

// ListByUser returns the user's bookings with station and location details,
// newest date first, then latest slot first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]models.BookingDetails, error) {
	const query = `
		SELECT b.id,
		       to_char(b.date, 'YYYY-MM-DD') AS date,
		       b.time_slot,
		       cs.id AS station_id,
		       cs.name AS station_name,
		       cs.charger_type,
		       cs.power_output,
		       l.name AS location_name,
		       l.city,
		       l.address
		FROM bookings b
		JOIN charging_stations cs ON b.station_id = cs.id
		JOIN locations l ON cs.location_id = l.id
		WHERE b.user_id = $1
		ORDER BY b.date DESC, b.time_slot DESC
	`
	bookings := make([]models.BookingDetails, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return bookings, nil
}
