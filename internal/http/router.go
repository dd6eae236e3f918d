package httpx

import (
	"log/slog"
	"net/http"

	"room-relay/internal/app"
	"room-relay/internal/room"
	"room-relay/internal/ws"
	"room-relay/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub, rooms *room.Registry) http.Handler {
	mw := NewMiddleware(cfg)
	api := &RoomsAPI{Log: logger, Rooms: rooms, PublicURL: cfg.PublicURL}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// Room lifecycle endpoints
	mux.Handle("/create_room", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			api.Create(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	mux.Handle("/room/{key}", http.HandlerFunc(api.Get))

	// WebSocket endpoint
	mux.Handle("/ws/{key}", http.HandlerFunc(hub.ServeWS))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
