package handlers

import (
	"net/http"
	"strconv"

	"evcharge/backend/services/booking-service/internal/service"
	"evcharge/backend/services/booking-service/internal/ws"
)

// SlotSubscriber upgrades a request to a slot event stream.
type SlotSubscriber interface {
	Subscribe(w http.ResponseWriter, r *http.Request, topic ws.Topic, userID int64)
}

// NewEventsHandler handles GET /api/bookings/events?stationId=&date=.
func NewEventsHandler(subscriber SlotSubscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		stationID, err := strconv.ParseInt(query.Get("stationId"), 10, 64)
		if err != nil || stationID <= 0 {
			writeError(w, http.StatusBadRequest, CodeInvalidInput, "stationId query parameter is required")
			return
		}
		day, err := service.ParseDate(query.Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidDate, "date query parameter must be YYYY-MM-DD")
			return
		}

		subscriber.Subscribe(w, r, ws.Topic{StationID: stationID, Date: day.Format(service.DateLayout)}, userID)
	}
}
