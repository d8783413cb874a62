// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kisaan/demand-dashboard/backend-go/internal/api"
	"github.com/kisaan/demand-dashboard/backend-go/internal/cache"
	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
	"github.com/kisaan/demand-dashboard/backend-go/internal/repository"
	"github.com/kisaan/demand-dashboard/backend-go/internal/repository/postgres"
	"github.com/kisaan/demand-dashboard/backend-go/internal/service"
	"github.com/kisaan/demand-dashboard/backend-go/internal/storage"
	"github.com/kisaan/demand-dashboard/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		logger.UseJSON()
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	demandRepo := repository.NewDemandRepository(db.DB)
	inventoryRepo := repository.NewInventoryRepository(db.DB)

	// Cache failures degrade to recomputation, never to a dead server
	seriesCache, err := cache.NewSeriesCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		seriesCache = cache.NewNoopSeriesCache()
	}

	var objectStorage storage.ObjectStorage
	if cfg.Export.Enabled {
		client, err := storage.NewMinioClient(cfg.Export)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize export storage")
		}
		objectStorage = client
	}

	services := &api.Services{
		DemandService:    service.NewDemandService(demandRepo, seriesCache, objectStorage),
		InventoryService: service.NewInventoryService(inventoryRepo, cfg.Inventory),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
