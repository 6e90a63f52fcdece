package models

// SlotEventBooked is the only event type emitted today.
const SlotEventBooked = "slot_booked"

// SlotEvent notifies subscribers that a slot changed state.
type SlotEvent struct {
	Type      string `json:"type"`
	StationID int64  `json:"stationId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
}
