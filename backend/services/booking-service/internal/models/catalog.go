package models

// Location groups charging stations at one address.
type Location struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	City    string `db:"city" json:"city"`
	Address string `db:"address" json:"address"`
}

// Station is a single bookable charger.
type Station struct {
	ID          int64  `db:"id" json:"id"`
	LocationID  int64  `db:"location_id" json:"location_id"`
	Name        string `db:"name" json:"name"`
	ChargerType string `db:"charger_type" json:"charger_type"`
	PowerOutput string `db:"power_output" json:"power_output"`
}
