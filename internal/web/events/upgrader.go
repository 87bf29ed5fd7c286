package events

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrHubClosed is returned when subscribing after Shutdown
var ErrHubClosed = errors.New("event hub closed")

// Config holds WebSocket configuration
type Config struct {
	ReadBufferSize  int
	WriteBufferSize int
	// CheckOrigin decides whether a cross-origin handshake is allowed. Nil
	// uses the gorilla default, which rejects foreign origins.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns default WebSocket configuration
func DefaultConfig() Config {
	return Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Upgrader upgrades HTTP connections into session subscriptions
type Upgrader struct {
	upgrader websocket.Upgrader
	hub      *Hub
}

// NewUpgrader creates a new Upgrader
func NewUpgrader(config Config, hub *Hub) *Upgrader {
	return &Upgrader{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		hub: hub,
	}
}

// Subscribe upgrades the request and subscribes the connection to the
// changes of sessionID. On upgrade failure the upgrader has already written
// an HTTP error response.
func (u *Upgrader) Subscribe(w http.ResponseWriter, r *http.Request, sessionID string) error {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	client := newClient(uuid.New().String(), sessionID, conn, u.hub)
	if !u.hub.join(client) {
		conn.Close()
		return ErrHubClosed
	}

	go client.writePump()
	go client.readPump()

	u.hub.logger.Info("subscriber connected", zap.String("client", client.ID), zap.String("session", sessionID))
	return nil
}
