package models

// LocationDTO describes a charging location.
type LocationDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// StationDTO describes a charging station.
type StationDTO struct {
	ID          int64  `json:"id"`
	LocationID  int64  `json:"location_id"`
	Name        string `json:"name"`
	ChargerType string `json:"charger_type"`
	PowerOutput string `json:"power_output"`
}
