package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"evcharge/client/internal/models"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTPDoer is the part of *http.Client the API client needs.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewDefaultHTTPClient returns an *http.Client with the given timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Client calls the booking API on behalf of one session.
type Client struct {
	baseURL string
	http    HTTPDoer
	token   string
}

// NewClient returns a client. token may be empty for signup and login.
func NewClient(baseURL string, httpClient HTTPDoer, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
	}
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, username, password string) (*models.AuthDTO, error) {
	var out models.AuthDTO
	err := c.call(ctx, http.MethodPost, "/api/auth/signup", credentials(username, password), &out)
	return &out, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthDTO, error) {
	var out models.AuthDTO
	err := c.call(ctx, http.MethodPost, "/api/auth/login", credentials(username, password), &out)
	return &out, err
}

// Locations lists all locations.
func (c *Client) Locations(ctx context.Context) ([]models.LocationDTO, error) {
	var out []models.LocationDTO
	err := c.call(ctx, http.MethodGet, "/api/bookings/locations", nil, &out)
	return out, err
}

// Stations lists the stations of a location.
func (c *Client) Stations(ctx context.Context, locationID int64) ([]models.StationDTO, error) {
	var out []models.StationDTO
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/stations/%d", locationID), nil, &out)
	return out, err
}

// BookedSlots lists the taken slots of a station on a date.
func (c *Client) BookedSlots(ctx context.Context, stationID int64, date string) ([]models.BookedSlotDTO, error) {
	var out []models.BookedSlotDTO
	path := fmt.Sprintf("/api/bookings/slots/%d/%s", stationID, url.PathEscape(date))
	err := c.call(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Book reserves a slot.
func (c *Client) Book(ctx context.Context, stationID int64, date, timeSlot string) (*models.BookingDTO, error) {
	body := map[string]interface{}{"stationId": stationID, "date": date, "timeSlot": timeSlot}
	var out models.BookingDTO
	err := c.call(ctx, http.MethodPost, "/api/bookings", body, &out)
	return &out, err
}

// MyBookings lists the session user's bookings, newest first.
func (c *Client) MyBookings(ctx context.Context) ([]models.BookingDetailsDTO, error) {
	var out []models.BookingDetailsDTO
	err := c.call(ctx, http.MethodGet, "/api/bookings/user", nil, &out)
	return out, err
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// call sends in as JSON (when non-nil) and decodes a 2xx body into out.
// Other statuses become *APIError.
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("api: read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return nil
}
