package service

import (
	"context"

	"go.uber.org/zap"

	"evcharge/backend/libs/metrics"
	"evcharge/backend/services/booking-service/internal/models"
)

// CatalogRepository is the read-only catalog storage.
type CatalogRepository interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListStations(ctx context.Context, locationID int64) ([]models.Station, error)
	StationExists(ctx context.Context, stationID int64) (bool, error)
}

// CatalogCache is an optional read-through cache for catalog reads. Get
// methods report a miss with ok=false and a nil error.
type CatalogCache interface {
	GetLocations(ctx context.Context) (locations []models.Location, ok bool, err error)
	SetLocations(ctx context.Context, locations []models.Location) error
	GetStations(ctx context.Context, locationID int64) (stations []models.Station, ok bool, err error)
	SetStations(ctx context.Context, locationID int64, stations []models.Station) error
}

// CatalogService serves locations and stations.
type CatalogService struct {
	repo   CatalogRepository
	cache  CatalogCache
	logger *zap.Logger
}

// NewCatalogService builds CatalogService. cache may be nil.
func NewCatalogService(repo CatalogRepository, cache CatalogCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

// ListLocations returns all locations ordered by city then name.
func (s *CatalogService) ListLocations(ctx context.Context) ([]models.Location, error) {
	if s.cache != nil {
		locations, ok, err := s.cache.GetLocations(ctx)
		switch {
		case err != nil:
			s.logger.Warn("catalog cache read failed", zap.String("key", "locations"), zap.Error(err))
		case ok:
			metrics.RecordCacheLookup("locations", true)
			return locations, nil
		}
		metrics.RecordCacheLookup("locations", false)
	}

	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLocations(ctx, locations); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", "locations"), zap.Error(err))
		}
	}
	return locations, nil
}

// ListStations returns the stations of a location. Unknown locations yield an
// empty slice.
func (s *CatalogService) ListStations(ctx context.Context, locationID int64) ([]models.Station, error) {
	if s.cache != nil {
		stations, ok, err := s.cache.GetStations(ctx, locationID)
		switch {
		case err != nil:
			s.logger.Warn("catalog cache read failed", zap.String("key", "stations"), zap.Int64("location_id", locationID), zap.Error(err))
		case ok:
			metrics.RecordCacheLookup("stations", true)
			return stations, nil
		}
		metrics.RecordCacheLookup("stations", false)
	}

	stations, err := s.repo.ListStations(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStations(ctx, locationID, stations); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", "stations"), zap.Int64("location_id", locationID), zap.Error(err))
		}
	}
	return stations, nil
}
