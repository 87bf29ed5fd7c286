// Package events streams session changes to websocket subscribers. Each
// session is a room; clients subscribed to a room receive every change
// applied to that session.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/logging"
	"github.com/fieldmark/designer/internal/session"
)

// Hub fans session changes out to the clients subscribed to each session
type Hub struct {
	logger *zap.Logger

	// Clients grouped by session id; written only by Run
	rooms   map[string]map[*Client]struct{}
	roomsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan session.Change
	closeRoom  chan string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHub creates a new Hub instance
func NewHub(ctx context.Context, logger *zap.Logger) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)
	return &Hub{
		logger:     logging.Or(logger),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan session.Change, 1024),
		closeRoom:  make(chan string, 64),
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run starts the hub's main event loop. It returns after Shutdown or when
// the parent context is cancelled.
func (h *Hub) Run() {
	h.wg.Add(1)
	defer h.wg.Done()

	for {
		select {
		case <-h.ctx.Done():
			h.cleanup()
			return

		case client := <-h.register:
			h.roomsMu.Lock()
			if h.rooms[client.Room] == nil {
				h.rooms[client.Room] = make(map[*Client]struct{})
			}
			h.rooms[client.Room][client] = struct{}{}
			h.roomsMu.Unlock()
			h.logger.Debug("subscriber joined", zap.String("client", client.ID), zap.String("session", client.Room))

		case client := <-h.unregister:
			h.roomsMu.Lock()
			h.remove(client)
			h.roomsMu.Unlock()

		case change := <-h.broadcast:
			h.deliver(change)

		case room := <-h.closeRoom:
			h.roomsMu.Lock()
			for client := range h.rooms[room] {
				h.remove(client)
			}
			h.roomsMu.Unlock()
		}
	}
}

// remove drops client and closes its send channel. Callers hold roomsMu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.Room]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.Room)
	}
	h.logger.Debug("subscriber left", zap.String("client", client.ID), zap.String("session", client.Room))
}

func (h *Hub) deliver(change session.Change) {
	data, err := json.Marshal(change)
	if err != nil {
		h.logger.Error("failed to encode change", zap.Error(err))
		return
	}

	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	for client := range h.rooms[change.Session] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("dropping slow subscriber", zap.String("client", client.ID), zap.String("session", client.Room))
			h.remove(client)
		}
	}
}

func (h *Hub) cleanup() {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			h.remove(client)
		}
	}
}

// Publish queues change for delivery to its session's subscribers. It never
// blocks; changes are dropped when the queue is full.
func (h *Hub) Publish(change session.Change) {
	select {
	case h.broadcast <- change:
	case <-h.ctx.Done():
	default:
		h.logger.Warn("change queue full, event dropped", zap.String("session", change.Session))
	}
}

// Listener adapts the hub to a session change listener
func (h *Hub) Listener() session.Listener {
	return h.Publish
}

// CloseRoom disconnects every subscriber of a session
func (h *Hub) CloseRoom(sessionID string) {
	select {
	case h.closeRoom <- sessionID:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of subscribers of sessionID, or of all
// sessions when sessionID is empty
func (h *Hub) ClientCount(sessionID string) int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	if sessionID != "" {
		return len(h.rooms[sessionID])
	}
	n := 0
	for _, clients := range h.rooms {
		n += len(clients)
	}
	return n
}

// RoomCount returns the number of sessions with subscribers
func (h *Hub) RoomCount() int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return len(h.rooms)
}

// Shutdown disconnects all subscribers and stops the event loop
func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}
