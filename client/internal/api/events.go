package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"evcharge/client/internal/models"
)

// WatchSlots streams slot events for a station and date until ctx ends or the
// server closes the stream. handle is called for every event in order.
func (c *Client) WatchSlots(ctx context.Context, stationID int64, date string, handle func(models.SlotEventDTO)) error {
	endpoint, err := c.eventsURL(stationID, date)
	if err != nil {
		return err
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return parseError(resp.StatusCode, nil)
		}
		return fmt.Errorf("api: open slot stream: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("api: read slot stream: %w", err)
		}
		var event models.SlotEventDTO
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}
		handle(event)
	}
}

func (c *Client) eventsURL(stationID int64, date string) (string, error) {
	u, err := url.Parse(c.endpoint("/api/bookings/events"))
	if err != nil {
		return "", err
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("api: unsupported scheme " + u.Scheme)
	}
	q := u.Query()
	q.Set("stationId", strconv.FormatInt(stationID, 10))
	q.Set("date", date)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
