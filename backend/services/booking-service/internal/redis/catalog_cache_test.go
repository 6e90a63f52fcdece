package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evcharge/backend/services/booking-service/internal/models"
)

// fakeKV is an in-memory stand-in for the go-redis client.
type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestCatalogCacheLocations(t *testing.T) {
	kv := newFakeKV()
	cache := NewCatalogCache(kv, 5*time.Minute)
	ctx := context.Background()

	_, ok, err := cache.GetLocations(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []models.Location{{ID: 1, Name: "Downtown Hub", City: "New York", Address: "123 Main St, Downtown"}}
	require.NoError(t, cache.SetLocations(ctx, want))
	assert.Equal(t, 5*time.Minute, kv.ttls["catalog:locations"])

	got, ok, err := cache.GetLocations(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCatalogCacheStationsPerLocation(t *testing.T) {
	kv := newFakeKV()
	cache := NewCatalogCache(kv, time.Minute)
	ctx := context.Background()

	a := []models.Station{{ID: 1, LocationID: 1, Name: "Station A1", ChargerType: "Type 2 AC", PowerOutput: "22 kW"}}
	require.NoError(t, cache.SetStations(ctx, 1, a))
	require.NoError(t, cache.SetStations(ctx, 2, nil))

	got, ok, err := cache.GetStations(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, got)

	empty, ok, err := cache.GetStations(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Equal(t, "[]", kv.data["catalog:stations:2"])

	_, ok, err = cache.GetStations(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCacheErrors(t *testing.T) {
	kv := newFakeKV()
	cache := NewCatalogCache(kv, time.Minute)
	ctx := context.Background()

	kv.data["catalog:locations"] = "{not json"
	_, ok, err := cache.GetLocations(ctx)
	assert.Error(t, err)
	assert.False(t, ok)

	kv.err = errors.New("connection refused")
	_, _, err = cache.GetStations(ctx, 1)
	assert.ErrorIs(t, err, kv.err)
	assert.ErrorIs(t, cache.SetLocations(ctx, nil), kv.err)
}
