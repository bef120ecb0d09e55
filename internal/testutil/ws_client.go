package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/noam/deal-board/internal/websocket"
)

// WSClient is a test WebSocket client for the state push channel.
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.StateMessage
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient connects a new viewer session to the test server.
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.StateMessage, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.StateMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// RequestSync asks the server to re-send the current state.
func (c *WSClient) RequestSync() {
	c.t.Helper()

	data, err := json.Marshal(websocket.ClientMessage{Event: websocket.EventSync})
	if err != nil {
		c.t.Fatalf("failed to marshal sync message: %v", err)
	}
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send sync message: %v", err)
	}
}

// NextState waits for the next state push.
func (c *WSClient) NextState(timeout time.Duration) *websocket.StateMessage {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if !ok {
			c.t.Fatal("websocket closed while waiting for state message")
		}
		return msg
	case err := <-c.errors:
		c.t.Fatalf("websocket error while waiting for state message: %v", err)
	case <-time.After(timeout):
		c.t.Fatal("timed out waiting for state message")
	}
	return nil
}

// WaitForState consumes pushes until one satisfies the predicate. Fails the
// test if the deadline passes first.
func (c *WSClient) WaitForState(timeout time.Duration, predicate func(*websocket.StateMessage) bool) *websocket.StateMessage {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				c.t.Fatal("websocket closed while waiting for state")
			}
			if predicate(msg) {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("websocket error while waiting for state: %v", err)
		case <-deadline:
			c.t.Fatal("timed out waiting for matching state")
		}
	}
}
