package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/api"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/config"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/identity"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/rating"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/room"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/version"
)

func main() {
	// Load server configuration. Path may be provided via DUEL_CONFIG or
	// defaults to ./duel_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./duel_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid duel configuration", err, logging.Fields{"config_path": configPath})
	}

	// Environment overrides for the external service endpoints.
	if v := os.Getenv(constants.EnvRatingBaseURL); v != "" {
		cfg.RatingBaseURL = v
	}
	if v := os.Getenv(constants.EnvIdentityBaseURL); v != "" {
		cfg.IdentityBaseURL = v
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	reporter := rating.NewClient(cfg.RatingBaseURL)
	idc := identity.NewClient(cfg.IdentityBaseURL)
	manager := room.NewManager(repo, reporter, cfg.BroadcastDivisor,
		time.Duration(cfg.ReconnectWindowSeconds)*time.Second)
	handler := api.NewHandler(manager, repo, idc)

	router := gin.Default()

	router.GET(constants.RouteHealthz, handler.Healthz)
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteRooms, handler.CreateRoom)
		apiRoutes.POST(constants.RouteRoomsJoin, handler.JoinRoom)
		apiRoutes.GET(constants.RouteRoomSocket, handler.RoomSocket)
		apiRoutes.GET(constants.RouteMatches, handler.ListMatches)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
	}

	addr := cfg.ServerAddress
	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		logging.Info("Server started", logging.Fields{
			constants.LogFieldAddr: addr,
			"version":              version.Version,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	// On SIGINT/SIGTERM stop every room first so in-progress matches send
	// their abandonment notifications, then drain the HTTP server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logging.Info("Shutting down", nil)
	manager.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
}
