package websocket

import (
	"log"
	"sync"

	"github.com/noam/deal-board/internal/domain"
)

// Hub fans the board state out to every connected viewer session. It keeps
// the latest emitted snapshot so that newly-connecting sessions receive the
// current state immediately, without reaching back into the store.
//
// Delivery is best-effort, at-most-once per session per event: a session
// whose send buffer is full simply misses that update and catches up on the
// next one (or by requesting a sync).
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.Snapshot
	sync       chan *Client
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	latest     domain.Snapshot
	mu         sync.RWMutex
}

// NewHub creates a hub seeded with the current state. Seed before serving:
// the hub never queries the store afterwards, it only follows change events.
func NewHub(initial domain.Snapshot) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.Snapshot),
		sync:       make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		latest:     initial,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()
			h.sendState(client, h.latest)

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case snap := <-h.broadcast:
			h.latest = snap
			h.broadcastState(snap)

		case client := <-h.sync:
			h.sendState(client, h.latest)
		}
	}
}

// Stop gracefully shuts down the hub and disconnects all sessions. It
// blocks until Run() has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// BroadcastState delivers a snapshot to every connected session. It is the
// store's change listener: calls arrive in mutation order and each snapshot
// is fully applied. Safe to call after Stop.
func (h *Hub) BroadcastState(snap domain.Snapshot) {
	select {
	case h.broadcast <- snap:
	case <-h.stop:
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stop:
		client.conn.Close()
	}
}

// Unregister removes a session from the fan-out set. Disconnection is
// passive: no store state is touched.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// RequestSync asks the hub to re-send the latest state to one session.
func (h *Hub) RequestSync(client *Client) {
	select {
	case h.sync <- client:
	case <-h.stop:
	}
}

// ClientCount reports the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcastState(snap domain.Snapshot) {
	data, err := NewStateMessage(snap).Marshal()
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		trySend(client, data)
	}
}

func (h *Hub) sendState(client *Client, snap domain.Snapshot) {
	data, err := NewStateMessage(snap).Marshal()
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}
	trySend(client, data)
}

// trySend attempts to send to a client, safely handling closed channels.
func trySend(client *Client, data []byte) {
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting - skip silently
		}
	}()

	select {
	case client.send <- data:
	default:
		// Buffer full, skip; the session misses this update
	}
}
