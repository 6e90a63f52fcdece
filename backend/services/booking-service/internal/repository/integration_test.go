//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	bookingdb "evcharge/backend/services/booking-service/internal/db"
	"evcharge/backend/services/booking-service/internal/models"
)

// setupPostgres starts a PostgreSQL container and applies the service migrations.
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("evcharge"),
		postgres.WithUsername("evcharge"),
		postgres.WithPassword("evcharge"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, bookingdb.Migrate(dsn, zap.NewNop()))
	// A second run is a no-op.
	require.NoError(t, bookingdb.Migrate(dsn, zap.NewNop()))

	db, err := bookingdb.NewPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIntegrationSeededCatalog(t *testing.T) {
	db := setupPostgres(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	locations, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 4)

	stations, err := repo.ListStations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stations, 3)
	assert.Equal(t, "Station A1", stations[0].Name)

	empty, err := repo.ListStations(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIntegrationConcurrentInsert(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	const attempts = 20
	userIDs := make([]int64, attempts)
	for i := range userIDs {
		u := &models.User{Username: fmt.Sprintf("driver-%d", i), PasswordHash: "digest"}
		require.NoError(t, users.Create(ctx, u))
		userIDs[i] = u.ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for _, uid := range userIDs {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			<-start
			err := bookings.Insert(ctx, &models.Booking{UserID: uid, StationID: 1, Date: "2030-06-01", TimeSlot: "10:00"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotAlreadyBooked):
				conflicts++
			default:
				others = append(others, err)
			}
		}(uid)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	slots, err := bookings.SlotsBooked(ctx, 1, "2030-06-01")
	require.NoError(t, err)
	assert.Equal(t, []models.BookedSlot{{Date: "2030-06-01", TimeSlot: "10:00"}}, slots)
}

func TestIntegrationDuplicateUsername(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: "digest"}))
	err := users.Create(ctx, &models.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestIntegrationUnknownStation(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "carol", PasswordHash: "digest"}
	require.NoError(t, users.Create(ctx, u))

	err := bookings.Insert(ctx, &models.Booking{UserID: u.ID, StationID: 4242, Date: "2030-06-01", TimeSlot: "10:00"})
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestIntegrationBookingsForUserRoundTrip(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	catalog := NewCatalogRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	dave := &models.User{Username: "dave", PasswordHash: "digest"}
	erin := &models.User{Username: "erin", PasswordHash: "digest"}
	require.NoError(t, users.Create(ctx, dave))
	require.NoError(t, users.Create(ctx, erin))

	for _, b := range []models.Booking{
		{UserID: dave.ID, StationID: 1, Date: "2030-06-01", TimeSlot: "09:00"},
		{UserID: dave.ID, StationID: 1, Date: "2030-06-02", TimeSlot: "08:00"},
		{UserID: dave.ID, StationID: 5, Date: "2030-06-01", TimeSlot: "14:00"},
		{UserID: erin.ID, StationID: 2, Date: "2030-06-03", TimeSlot: "10:00"},
		{UserID: erin.ID, StationID: 1, Date: "2030-06-01", TimeSlot: "10:00"},
	} {
		require.NoError(t, bookings.Insert(ctx, &b))
	}

	mine, err := bookings.ListByUser(ctx, dave.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)

	var order [][2]string
	for _, b := range mine {
		order = append(order, [2]string{b.Date, b.TimeSlot})
	}
	assert.Equal(t, [][2]string{
		{"2030-06-02", "08:00"},
		{"2030-06-01", "14:00"},
		{"2030-06-01", "09:00"},
	}, order)

	locations, err := catalog.ListLocations(ctx)
	require.NoError(t, err)
	locationByID := make(map[int64]models.Location, len(locations))
	for _, l := range locations {
		locationByID[l.ID] = l
	}

	for _, b := range mine {
		assert.NotEqual(t, "10:00", b.TimeSlot, "another user's booking leaked")

		var station *models.Station
		for _, loc := range locations {
			stations, err := catalog.ListStations(ctx, loc.ID)
			require.NoError(t, err)
			for i := range stations {
				if stations[i].ID == b.StationID {
					station = &stations[i]
				}
			}
		}
		require.NotNil(t, station, "station %d not in catalog", b.StationID)
		location := locationByID[station.LocationID]

		assert.Equal(t, station.Name, b.StationName)
		assert.Equal(t, station.ChargerType, b.ChargerType)
		assert.Equal(t, station.PowerOutput, b.PowerOutput)
		assert.Equal(t, location.Name, b.LocationName)
		assert.Equal(t, location.City, b.City)
		assert.Equal(t, location.Address, b.Address)
	}
	assert.Equal(t, "Mall Station", mine[1].LocationName)

	theirs, err := bookings.ListByUser(ctx, erin.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 2)
	assert.Equal(t, "2030-06-03", theirs[0].Date)

	none, err := bookings.ListByUser(ctx, 999999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIntegrationDeletedUserCannotBook(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "frank", PasswordHash: "digest"}
	require.NoError(t, users.Create(ctx, u))
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
	require.NoError(t, err)

	err = bookings.Insert(ctx, &models.Booking{UserID: u.ID, StationID: 1, Date: "2030-06-01", TimeSlot: "10:00"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
