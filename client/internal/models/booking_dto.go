package models

import "time"

// BookedSlotDTO is one taken slot of a station.
type BookedSlotDTO struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// BookingDTO is the booking created by POST /api/bookings.
type BookingDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	StationID int64     `json:"station_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingDetailsDTO is a booking with station and location details.
type BookingDetailsDTO struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	StationID    int64  `json:"stationId"`
	StationName  string `json:"stationName"`
	ChargerType  string `json:"chargerType"`
	PowerOutput  string `json:"powerOutput"`
	LocationName string `json:"locationName"`
	City         string `json:"city"`
	Address      string `json:"address"`
}

// SlotEventDTO is pushed over the slot event stream.
type SlotEventDTO struct {
	Type      string `json:"type"`
	StationID int64  `json:"stationId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
}
