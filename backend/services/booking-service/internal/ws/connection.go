package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBufferSize = 16
	readLimit      = 4096
)

// Connection is one subscriber's WebSocket. Clients only listen; anything they
// send is read and discarded so control frames keep flowing.
type Connection struct {
	topic        Topic
	userID       int64
	ws           *websocket.Conn
	send         chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	logger       *zap.Logger
	writeTimeout time.Duration
	pingInterval time.Duration
	onClose      func(*Connection)
}

// NewConnection builds connection wrapper.
func NewConnection(topic Topic, userID int64, ws *websocket.Conn, writeTimeout, pingInterval time.Duration, logger *zap.Logger, onClose func(*Connection)) *Connection {
	return &Connection{
		topic:        topic,
		userID:       userID,
		ws:           ws,
		send:         make(chan []byte, sendBufferSize),
		done:         make(chan struct{}),
		logger:       logger,
		writeTimeout: writeTimeout,
		pingInterval: pingInterval,
		onClose:      onClose,
	}
}

// Topic returns the subscription topic.
func (c *Connection) Topic() Topic {
	return c.topic
}

// Start launches the write pump and blocks in the read pump.
func (c *Connection) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump()
}

func (c *Connection) readPump() {
	defer c.Close()

	// Missing two pings in a row means the peer is gone.
	pongWait := 2 * c.pingInterval
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("subscriber read closed", zap.String("topic", c.topic.Key()), zap.Error(err))
			}
			return
		}
	}
}

func (c *Connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			c.Close()
			return
		case <-c.done:
			_ = c.write(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Send enqueues a message for writing. A subscriber whose buffer is full is
// too slow to keep up and gets disconnected.
func (c *Connection) Send(msg []byte) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
		c.logger.Warn("dropping slow subscriber, buffer full", zap.String("topic", c.topic.Key()), zap.Int64("user_id", c.userID))
		c.Close()
	}
}

// Close tears the connection down once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.onClose != nil {
			c.onClose(c)
		}
		// Give the write pump a moment to send the close frame.
		time.AfterFunc(c.writeTimeout, func() { _ = c.ws.Close() })
	})
}

func (c *Connection) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}
