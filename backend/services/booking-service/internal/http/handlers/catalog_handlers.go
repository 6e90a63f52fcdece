package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/models"
)

// Catalog lists locations and stations.
type Catalog interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListStations(ctx context.Context, locationID int64) ([]models.Station, error)
}

// CatalogHandlers serves the read-only catalog.
type CatalogHandlers struct {
	catalog Catalog
	logger  *zap.Logger
}

// NewCatalogHandlers returns handler.
func NewCatalogHandlers(catalog Catalog, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, logger: logger}
}

// Locations handles GET /api/bookings/locations.
func (h *CatalogHandlers) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.catalog.ListLocations(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

// Stations handles GET /api/bookings/stations/{locationId}.
func (h *CatalogHandlers) Stations(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationId")
	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid location id")
		return
	}

	stations, err := h.catalog.ListStations(r.Context(), locationID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if stations == nil {
		stations = []models.Station{}
	}
	writeJSON(w, http.StatusOK, stations)
}
