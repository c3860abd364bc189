// internal/relay/hub.go

package relay

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
)

// Pusher is the write side of the relay as seen by the API layer.
// Pushes are best-effort: the boolean reports delivery to the send
// buffer only, and callers must not treat false as a failure.
type Pusher interface {
	SendToUser(userID int64, event Event) bool
	IsOnline(userID int64) bool
}

// Hub tracks which users are currently reachable over the live channel.
// At most one connection handle exists per user; a reconnect replaces
// the previous handle silently.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

// NewHub creates an empty connection registry
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*Client),
	}
}

// Register inserts the client's connection handle, replacing any prior
// handle for the same user. Every connected client then receives a full
// roster broadcast.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	old := h.clients[client.userID]
	h.clients[client.userID] = client
	total := len(h.clients)
	h.mu.Unlock()

	if old != nil {
		old.Close()
	}
	connectedClients.Set(float64(total))

	log.Printf("User %d connected. Total clients: %d", client.userID, total)
	h.broadcastRoster()
}

// Unregister removes the client's handle if it is still the registered
// one. The close of a replaced connection therefore cannot evict its
// successor. Removing an absent handle is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	removed := false
	if current, ok := h.clients[client.userID]; ok && current == client {
		delete(h.clients, client.userID)
		removed = true
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.Close()

	if removed {
		connectedClients.Set(float64(total))
		log.Printf("User %d disconnected. Total clients: %d", client.userID, total)
		h.broadcastRoster()
	}
}

// IsOnline reports whether the user has a registered connection handle
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Roster returns the identifiers of all currently connected users
func (h *Hub) Roster() []int64 {
	h.mu.RLock()
	roster := make([]int64, 0, len(h.clients))
	for userID := range h.clients {
		roster = append(roster, userID)
	}
	h.mu.RUnlock()

	sort.Slice(roster, func(i, j int) bool { return roster[i] < roster[j] })
	return roster
}

// SendToUser pushes an event to one user if connected. Stale handles
// and full send buffers drop the event silently.
func (h *Hub) SendToUser(userID int64, event Event) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		eventsDropped.WithLabelValues(event.Name).Inc()
		return false
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return false
	}

	if !client.TrySend(data) {
		eventsDropped.WithLabelValues(event.Name).Inc()
		return false
	}

	eventsPushed.WithLabelValues(event.Name).Inc()
	return true
}

// broadcastRoster pushes the full roster to every connected client,
// not just the one that changed.
func (h *Hub) broadcastRoster() {
	event := NewEvent(EventOnlineUsers, h.Roster())

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling roster: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		if client.TrySend(data) {
			eventsPushed.WithLabelValues(EventOnlineUsers).Inc()
		} else {
			eventsDropped.WithLabelValues(EventOnlineUsers).Inc()
		}
	}
}

// ActiveConnections returns the number of registered handles
func (h *Hub) ActiveConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes all client connections
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[int64]*Client)
	h.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
	connectedClients.Set(0)
}
