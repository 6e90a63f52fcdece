package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"evcharge/backend/services/booking-service/internal/models"
)

// KV is the subset of the go-redis client used by the catalog cache.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CatalogCache stores catalog reads as JSON documents with a TTL.
type CatalogCache struct {
	client KV
	ttl    time.Duration
}

// NewCatalogCache returns redis-backed catalog cache.
func NewCatalogCache(client KV, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

const locationsKey = "catalog:locations"

func stationsKey(locationID int64) string {
	return fmt.Sprintf("catalog:stations:%d", locationID)
}

// GetLocations returns cached locations. A missing key is a miss, not an error.
func (c *CatalogCache) GetLocations(ctx context.Context) ([]models.Location, bool, error) {
	var locations []models.Location
	ok, err := c.get(ctx, locationsKey, &locations)
	return locations, ok, err
}

// SetLocations caches locations.
func (c *CatalogCache) SetLocations(ctx context.Context, locations []models.Location) error {
	return c.set(ctx, locationsKey, locations)
}

// GetStations returns cached stations of a location.
func (c *CatalogCache) GetStations(ctx context.Context, locationID int64) ([]models.Station, bool, error) {
	var stations []models.Station
	ok, err := c.get(ctx, stationsKey(locationID), &stations)
	if ok && stations == nil {
		stations = []models.Station{}
	}
	return stations, ok, err
}

// SetStations caches stations of a location.
func (c *CatalogCache) SetStations(ctx context.Context, locationID int64, stations []models.Station) error {
	if stations == nil {
		stations = []models.Station{}
	}
	return c.set(ctx, stationsKey(locationID), stations)
}

func (c *CatalogCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
