package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evcharge/backend/services/booking-service/internal/models"
)

func TestCatalogRepositoryListLocations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`FROM locations\s+ORDER BY city, name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "address"}).
			AddRow(int64(3), "Airport Terminal", "Chicago", "789 Airport Rd, Terminal 1").
			AddRow(int64(4), "Business Park", "Houston", "321 Corporate Ave, Business District"))

	locations, err := repo.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, models.Location{ID: 3, Name: "Airport Terminal", City: "Chicago", Address: "789 Airport Rd, Terminal 1"}, locations[0])
}

func TestCatalogRepositoryListStations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`FROM charging_stations\s+WHERE location_id = \$1\s+ORDER BY name`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location_id", "name", "charger_type", "power_output"}).
			AddRow(int64(1), int64(1), "Station A1", "Type 2 AC", "22 kW").
			AddRow(int64(2), int64(1), "Station A2", "CCS DC", "50 kW"))

	stations, err := repo.ListStations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "Station A1", stations[0].Name)
	assert.Equal(t, "50 kW", stations[1].PowerOutput)
}

func TestCatalogRepositoryListStationsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`FROM charging_stations`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location_id", "name", "charger_type", "power_output"}))

	stations, err := repo.ListStations(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, stations)
	assert.Empty(t, stations)
}

func TestCatalogRepositoryStationExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.StationExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.StationExists(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}
