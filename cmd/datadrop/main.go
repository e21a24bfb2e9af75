package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/datadrop/datadrop/internal/api"
	"github.com/datadrop/datadrop/internal/config"
	"github.com/datadrop/datadrop/internal/db"
	"github.com/datadrop/datadrop/internal/logging"
	"github.com/datadrop/datadrop/internal/storage"
)

func main() {
	logger := logging.New("datadrop")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.NewStore(dbConfig(cfg))
	if err != nil {
		logger.Fatalf("init artifact index: %v", err)
	}
	defer func() { _ = store.Close() }()

	persister := storage.NewPersister(cfg.DataLocation, logger)

	r := api.NewRouter(persister, store, cfg, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s, writing payloads to %s", cfg.ListenAddr(), cfg.DataLocation)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Println("server exiting")
}

func dbConfig(cfg *config.Config) db.DBConfig {
	if cfg.DBDriver == "postgres" {
		return db.DBConfig{Type: db.DialectPostgres, URL: cfg.DatabaseURL}
	}
	return db.DBConfig{Type: db.DialectSQLite, Path: cfg.DBPath}
}
