package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/models"
	"evcharge/backend/services/booking-service/internal/service"
)

// Reservations books slots and lists bookings.
type Reservations interface {
	Reserve(ctx context.Context, in service.ReserveInput) (*models.Booking, error)
	SlotsBooked(ctx context.Context, stationID int64, date string) ([]models.BookedSlot, error)
	BookingsForUser(ctx context.Context, userID int64) ([]models.BookingDetails, error)
}

// BookingHandlers serves slot and booking endpoints.
type BookingHandlers struct {
	reservations Reservations
	logger       *zap.Logger
}

// NewBookingHandlers returns handler.
func NewBookingHandlers(reservations Reservations, logger *zap.Logger) *BookingHandlers {
	return &BookingHandlers{reservations: reservations, logger: logger}
}

type createBookingRequest struct {
	StationID int64  `json:"stationId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
}

// Create handles POST /api/bookings.
func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid JSON body")
		return
	}
	if req.StationID <= 0 || req.Date == "" || req.TimeSlot == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "stationId, date and timeSlot are required")
		return
	}

	booking, err := h.reservations.Reserve(r.Context(), service.ReserveInput{
		UserID:    userID,
		StationID: req.StationID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// Slots handles GET /api/bookings/slots/{stationId}/{date}.
func (h *BookingHandlers) Slots(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid station id")
		return
	}

	slots, err := h.reservations.SlotsBooked(r.Context(), stationID, mux.Vars(r)["date"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if slots == nil {
		slots = []models.BookedSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// Mine handles GET /api/bookings/user.
func (h *BookingHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.reservations.BookingsForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if bookings == nil {
		bookings = []models.BookingDetails{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
