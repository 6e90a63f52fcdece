package models

import "time"

// Booking is one reserved (station, date, time slot).
// Date is YYYY-MM-DD, TimeSlot is HH:MM.
type Booking struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	StationID int64     `db:"station_id" json:"station_id"`
	Date      string    `db:"date" json:"date"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BookedSlot marks a slot as unavailable.
type BookedSlot struct {
	Date     string `db:"date" json:"date"`
	TimeSlot string `db:"time_slot" json:"timeSlot"`
}

// BookingDetails is a user's booking joined with station and location data.
type BookingDetails struct {
	ID           int64  `db:"id" json:"id"`
	Date         string `db:"date" json:"date"`
	TimeSlot     string `db:"time_slot" json:"timeSlot"`
	StationID    int64  `db:"station_id" json:"stationId"`
	StationName  string `db:"station_name" json:"stationName"`
	ChargerType  string `db:"charger_type" json:"chargerType"`
	PowerOutput  string `db:"power_output" json:"powerOutput"`
	LocationName string `db:"location_name" json:"locationName"`
	City         string `db:"city" json:"city"`
	Address      string `db:"address" json:"address"`
}
