package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "room-relay/internal/app"
	httpx "room-relay/internal/http"
	room "room-relay/internal/room"
	ws "room-relay/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Registries: room lifecycle + per-room membership
	rooms := room.NewRegistry()
	members := ws.NewMembership()

	// WebSocket relay hub
	hub := ws.NewHub(logger, rooms, members)

	// Idle-room sweeper, the sole background task
	sweeper := room.NewSweeper(logger, rooms, members, cfg.RoomTTL, cfg.SweepInterval)
	go sweeper.Run(ctx)

	// HTTP + WS router
	router := httpx.NewRouter(cfg, logger, hub, rooms)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr, "ttl", cfg.RoomTTL, "sweep", cfg.SweepInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	// shutdown
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
