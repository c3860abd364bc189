// internal/relay/handlers.go

package relay

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Configure CORS as needed
		return true
	},
}

// Handler upgrades authenticated requests onto the live channel
type Handler struct {
	hub *Hub
}

// NewHandler creates a new relay handler
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// AuthMiddleware matches the signature of the session middleware
type AuthMiddleware func(http.Handler) http.Handler

// RegisterRoutes registers the websocket endpoint
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware AuthMiddleware) {
	router.Handle("/ws", authMiddleware(http.HandlerFunc(handler.HandleWebSocket))).Methods("GET")
}

// HandleWebSocket performs the handshake and registers the connection.
// The caller's identity comes from the session middleware, so the
// handle is bound to an authenticated user.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	client.Start()
}
