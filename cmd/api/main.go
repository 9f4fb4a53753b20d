package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/clock"
	"github.com/quantum-forge/internal/config"
	httphandler "github.com/quantum-forge/internal/http"
	"github.com/quantum-forge/internal/service"
	"github.com/quantum-forge/internal/store"
	"github.com/quantum-forge/internal/store/cassandra"
	"github.com/quantum-forge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Debug)

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error("Failed to load catalog", logger.Err(err))
		os.Exit(1)
	}

	saves, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Error("Failed to initialize store", logger.F("backend", cfg.StoreBackend), logger.Err(err))
		os.Exit(1)
	}
	defer closeStore()
	log.Info("Store ready", logger.F("backend", cfg.StoreBackend))

	games := service.NewManager(saves, cat, clock.Real{}, log, cfg.Game)
	handler := httphandler.NewHandler(games, log, cfg.Game)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(httphandler.RequestIDMiddleware)
	router.Use(httphandler.LoggingMiddleware(log))

	router.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info("Server starting", logger.F("addr", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", logger.Err(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Err(err))
	}
	if err := games.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to save games on shutdown", logger.Err(err))
	}

	log.Info("Server exited")
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// openStore builds the configured save backend and its release func.
func openStore(cfg *config.Config, log *logger.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		s, err := store.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s, log), nil
	case config.BackendCassandra:
		client, err := cassandra.NewClient(cfg.Cassandra, log)
		if err != nil {
			return nil, nil, err
		}
		return cassandra.NewRepository(client, log, cfg.Cassandra.Timeout), client.Close, nil
	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s, log), nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}

func closer(c io.Closer, log *logger.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("Failed to close store", logger.Err(err))
		}
	}
}
