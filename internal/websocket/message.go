package websocket

import (
	"encoding/json"

	"github.com/noam/deal-board/internal/domain"
)

const (
	// Server to client
	EventState = "state"

	// Client to server
	EventSync = "sync"
)

// StateMessage is the full-state push sent on connect and after every
// mutation. There is no delta protocol; the payload is always complete.
type StateMessage struct {
	Event string        `json:"event"`
	Users []domain.User `json:"users"`
	Deals []domain.Deal `json:"deals"`
}

func NewStateMessage(snap domain.Snapshot) *StateMessage {
	return &StateMessage{
		Event: EventState,
		Users: snap.Users,
		Deals: snap.Deals,
	}
}

func (m *StateMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ClientMessage is the envelope for messages a viewer may send. The only
// recognized event is "sync", which requests an immediate state push.
type ClientMessage struct {
	Event string `json:"event"`
}
