// internal/relay/events.go

package relay

import (
	"encoding/json"
	"log"
	"time"
)

// Event names pushed over the live channel
const (
	EventOnlineUsers  = "getOnlineUsers"
	EventNewMessage   = "newMessage"
	EventNotification = "notification"
)

// Event is a single server-to-client push
type Event struct {
	Name      string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent wraps a payload into a named event
func NewEvent(name string, payload interface{}) Event {
	return Event{
		Name:      name,
		Data:      mustMarshal(payload),
		Timestamp: time.Now(),
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling event payload: %v", err)
		return json.RawMessage(`{}`)
	}
	return data
}
