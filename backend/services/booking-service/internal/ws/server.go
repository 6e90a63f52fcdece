package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultPingInterval = 30 * time.Second
)

// Server upgrades HTTP requests to slot event subscriptions.
type Server struct {
	hub          *Hub
	logger       *zap.Logger
	writeTimeout time.Duration
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	baseCtx      context.Context
}

// ServerOptions tunes the WebSocket server.
type ServerOptions struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	// CheckOrigin validates the Origin header; nil accepts any origin.
	CheckOrigin func(r *http.Request) bool
}

// NewServer builds ws server. Connections are closed when ctx is done.
func NewServer(ctx context.Context, hub *Hub, opts ServerOptions, logger *zap.Logger) *Server {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Server{
		hub:          hub,
		logger:       logger,
		writeTimeout: opts.WriteTimeout,
		pingInterval: opts.PingInterval,
		baseCtx:      ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Subscribe upgrades the request and registers the connection on topic. The
// caller authenticates the request and validates the topic first.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request, topic Topic, userID int64) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response.
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(s.baseCtx)
	connection := NewConnection(topic, userID, conn, s.writeTimeout, s.pingInterval, s.logger, func(c *Connection) {
		s.hub.Remove(c)
		cancel()
	})
	s.hub.Add(connection)

	go connection.Start(ctx)
	s.logger.Debug("slot event subscriber connected", zap.String("topic", topic.Key()), zap.Int64("user_id", userID))
}
