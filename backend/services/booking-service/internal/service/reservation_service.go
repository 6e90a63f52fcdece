package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"evcharge/backend/libs/metrics"
	"evcharge/backend/services/booking-service/internal/models"
	"evcharge/backend/services/booking-service/internal/repository"
)

// DateLayout is the wire and storage format of booking dates.
const DateLayout = "2006-01-02"

const publishTimeout = 2 * time.Second

// BookingRepository is the slot ledger contract.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	SlotsBooked(ctx context.Context, stationID int64, date string) ([]models.BookedSlot, error)
	ListByUser(ctx context.Context, userID int64) ([]models.BookingDetails, error)
}

// StationChecker reports whether a station exists.
type StationChecker interface {
	StationExists(ctx context.Context, stationID int64) (bool, error)
}

// SlotEventPublisher delivers slot events to live subscribers.
type SlotEventPublisher interface {
	Publish(ctx context.Context, event models.SlotEvent) error
}

// ReserveInput is one booking request on behalf of an authenticated user.
type ReserveInput struct {
	UserID    int64
	StationID int64
	Date      string
	TimeSlot  string
}

// ReservationService validates and records bookings.
type ReservationService struct {
	bookings  BookingRepository
	stations  StationChecker
	publisher SlotEventPublisher
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// ReservationOption customises ReservationService.
type ReservationOption func(*ReservationService)

// WithPublisher sets the slot event publisher.
func WithPublisher(p SlotEventPublisher) ReservationOption {
	return func(s *ReservationService) { s.publisher = p }
}

// WithLocation sets the time zone that defines "today" for past-date checks.
func WithLocation(loc *time.Location) ReservationOption {
	return func(s *ReservationService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) ReservationOption {
	return func(s *ReservationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewReservationService builds ReservationService.
func NewReservationService(bookings BookingRepository, stations StationChecker, logger *zap.Logger, opts ...ReservationOption) *ReservationService {
	s := &ReservationService{
		bookings: bookings,
		stations: stations,
		location: time.UTC,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reserve books a slot. The ledger's uniqueness constraint is the only guard
// against concurrent bookings of the same slot.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (*models.Booking, error) {
	booking, err := s.reserve(ctx, in)
	switch {
	case err == nil:
		metrics.RecordBookingAttempt(metrics.OutcomeCreated)
	case errors.Is(err, ErrAlreadyBooked):
		metrics.RecordBookingAttempt(metrics.OutcomeConflict)
	case isValidationError(err):
		metrics.RecordBookingAttempt(metrics.OutcomeRejected)
	default:
		metrics.RecordBookingAttempt(metrics.OutcomeFailed)
	}
	return booking, err
}

func (s *ReservationService) reserve(ctx context.Context, in ReserveInput) (*models.Booking, error) {
	if in.UserID <= 0 || in.StationID <= 0 {
		return nil, ErrInvalidInput
	}

	exists, err := s.stations.StationExists(ctx, in.StationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownStation
	}

	day, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if !ValidTimeSlot(in.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}
	if day.Before(s.today()) {
		return nil, ErrInvalidDate
	}

	booking := &models.Booking{
		UserID:    in.UserID,
		StationID: in.StationID,
		Date:      day.Format(DateLayout),
		TimeSlot:  in.TimeSlot,
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotAlreadyBooked):
			return nil, ErrAlreadyBooked
		case errors.Is(err, repository.ErrStationNotFound):
			return nil, ErrUnknownStation
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("station_id", booking.StationID),
		zap.String("date", booking.Date),
		zap.String("time_slot", booking.TimeSlot),
	)
	s.publish(ctx, booking)
	return booking, nil
}

// publish is best effort. The booking is durable regardless of the outcome.
func (s *ReservationService) publish(ctx context.Context, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := models.SlotEvent{
		Type:      models.SlotEventBooked,
		StationID: booking.StationID,
		Date:      booking.Date,
		TimeSlot:  booking.TimeSlot,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish slot event", zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
}

// SlotsBooked lists the taken slots of a station on a date.
func (s *ReservationService) SlotsBooked(ctx context.Context, stationID int64, date string) ([]models.BookedSlot, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.bookings.SlotsBooked(ctx, stationID, day.Format(DateLayout))
}

// BookingsForUser lists the bookings owned by userID, newest first.
func (s *ReservationService) BookingsForUser(ctx context.Context, userID int64) ([]models.BookingDetails, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *ReservationService) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
// Year 0000 is refused since Postgres dates have no year zero.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse(DateLayout, value)
	if err != nil || day.Year() < 1 {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// ValidTimeSlot reports whether value is one of the hourly slots "00:00" to "23:00".
func ValidTimeSlot(value string) bool {
	if len(value) != 5 || value[2] != ':' || value[3:] != "00" {
		return false
	}
	h1, h2 := value[0], value[1]
	if h1 < '0' || h1 > '2' || h2 < '0' || h2 > '9' {
		return false
	}
	return h1 < '2' || h2 <= '3'
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownUser) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrUnknownStation)
}
