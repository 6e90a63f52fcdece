package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"evcharge/backend/services/booking-service/internal/models"
	"evcharge/backend/services/booking-service/internal/repository"
)

type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*models.User
	getErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byName: make(map[string]*models.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[user.Username]; ok {
		return repository.ErrUsernameTaken
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.byName[user.Username] = &stored
	return nil
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// memoryLedger enforces slot uniqueness under its mutex like the database
// constraint does.
type memoryLedger struct {
	mu        sync.Mutex
	nextID    int64
	bookings  []models.Booking
	insertErr error
}

func slotKey(stationID int64, date, slot string) string {
	return fmt.Sprintf("%d|%s|%s", stationID, date, slot)
}

func (m *memoryLedger) Insert(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	key := slotKey(booking.StationID, booking.Date, booking.TimeSlot)
	for _, b := range m.bookings {
		if slotKey(b.StationID, b.Date, b.TimeSlot) == key {
			return repository.ErrSlotAlreadyBooked
		}
	}
	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Now().UTC()
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memoryLedger) SlotsBooked(_ context.Context, stationID int64, date string) ([]models.BookedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots := make([]models.BookedSlot, 0)
	for _, b := range m.bookings {
		if b.StationID == stationID && b.Date == date {
			slots = append(slots, models.BookedSlot{Date: b.Date, TimeSlot: b.TimeSlot})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].TimeSlot < slots[j].TimeSlot })
	return slots, nil
}

func (m *memoryLedger) ListByUser(_ context.Context, userID int64) ([]models.BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BookingDetails, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, models.BookingDetails{ID: b.ID, Date: b.Date, TimeSlot: b.TimeSlot, StationID: b.StationID})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].TimeSlot > out[j].TimeSlot
	})
	return out, nil
}

type stationSet map[int64]bool

func (s stationSet) StationExists(_ context.Context, id int64) (bool, error) {
	return s[id], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.SlotEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.SlotEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []models.SlotEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.SlotEvent(nil), p.events...)
}

type countingCatalog struct {
	locationCalls int
	stationCalls  int
	locations     []models.Location
	stations      map[int64][]models.Station
}

func (c *countingCatalog) ListLocations(context.Context) ([]models.Location, error) {
	c.locationCalls++
	return c.locations, nil
}

func (c *countingCatalog) ListStations(_ context.Context, locationID int64) ([]models.Station, error) {
	c.stationCalls++
	stations, ok := c.stations[locationID]
	if !ok {
		return []models.Station{}, nil
	}
	return stations, nil
}

func (c *countingCatalog) StationExists(_ context.Context, id int64) (bool, error) {
	for _, list := range c.stations {
		for _, st := range list {
			if st.ID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

type mapCache struct {
	locations []models.Location
	stations  map[int64][]models.Station
	err       error
}

func (c *mapCache) GetLocations(context.Context) ([]models.Location, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.locations, c.locations != nil, nil
}

func (c *mapCache) SetLocations(_ context.Context, locations []models.Location) error {
	if c.err != nil {
		return c.err
	}
	c.locations = locations
	return nil
}

func (c *mapCache) GetStations(_ context.Context, locationID int64) ([]models.Station, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	s, ok := c.stations[locationID]
	return s, ok, nil
}

func (c *mapCache) SetStations(_ context.Context, locationID int64, stations []models.Station) error {
	if c.err != nil {
		return c.err
	}
	if c.stations == nil {
		c.stations = make(map[int64][]models.Station)
	}
	c.stations[locationID] = stations
	return nil
}

var errStorage = errors.New("storage unavailable")
