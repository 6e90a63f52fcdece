package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"evcharge/backend/services/booking-service/internal/models"
)

// CatalogRepository reads locations and stations reference data.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository returns repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListLocations returns all locations ordered by city then name.
func (r *CatalogRepository) ListLocations(ctx context.Context) ([]models.Location, error) {
	const query = `
		SELECT id, name, city, address
		FROM locations
		ORDER BY city, name, id
	`
	locations := make([]models.Location, 0)
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// ListStations returns the stations of a location ordered by name. Unknown
// locations yield an empty slice.
func (r *CatalogRepository) ListStations(ctx context.Context, locationID int64) ([]models.Station, error) {
	const query = `
		SELECT id, location_id, name, charger_type, power_output
		FROM charging_stations
		WHERE location_id = $1
		ORDER BY name, id
	`
	stations := make([]models.Station, 0)
	if err := r.db.SelectContext(ctx, &stations, query, locationID); err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	return stations, nil
}

// StationExists reports whether a station with the given id exists.
func (r *CatalogRepository) StationExists(ctx context.Context, stationID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM charging_stations WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, stationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("station exists: %w", err)
	}
	return exists, nil
}
