package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/noam/deal-board/internal/api/handlers"
	"github.com/noam/deal-board/internal/api/middleware"
	"github.com/noam/deal-board/internal/config"
	"github.com/noam/deal-board/internal/service"
	"github.com/noam/deal-board/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.User)
	dealHandler := handlers.NewDealHandler(services.Deal)
	stateHandler := handlers.NewStateHandler(services.State)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Get("/state", stateHandler.GetState)
		r.Get("/scoreboard", stateHandler.GetScoreboard)

		r.Route("/deals", func(r chi.Router) {
			r.Post("/", dealHandler.Create)
			r.Post("/{id}/status", dealHandler.SetStatus)
		})
	})

	// WebSocket endpoint
	r.Get("/ws", wsHandler.Handle)

	return r
}
