package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/noam/deal-board/internal/api"
	"github.com/noam/deal-board/internal/config"
	"github.com/noam/deal-board/internal/service"
	"github.com/noam/deal-board/internal/store"
	"github.com/noam/deal-board/internal/websocket"
)

// TestServer bundles a fresh store, hub, services and an httptest server.
type TestServer struct {
	Server   *httptest.Server
	Store    *store.Store
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
}

// TestConfig returns a config suitable for tests.
func TestConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		Environment: "test",
	}
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig()

	st := store.New()
	hub := websocket.NewHub(st.Snapshot(context.Background()))
	st.Subscribe(hub.BroadcastState)
	go hub.Run()

	services := service.NewServices(st, cfg)
	router := api.NewRouter(services, hub, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    st,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL
func (ts *TestServer) WebSocketURL() string {
	return "ws" + ts.Server.URL[4:] + "/ws"
}
