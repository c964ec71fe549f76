package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/bookshelf"
	"bookshelf/internal/config"
	apphttp "bookshelf/internal/http"
	"bookshelf/internal/httpx"
	"bookshelf/internal/store"
	"bookshelf/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := mustOpenStorage(ctx, cfg)
	defer backend.Close()

	shelf := view.NewShelf()
	svc, err := bookshelf.New(ctx, backend, shelf)
	if err != nil {
		log.Fatalf("cannot load books: %v", err)
	}
	svc.Refresh()
	log.Printf("bookshelf loaded driver=%s key=%s books=%d", cfg.StorageDriver, cfg.StorageKey, svc.Store().Len())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHandler(ctx, cfg, svc, shelf, backend),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func newHandler(ctx context.Context, cfg *config.Config, svc *bookshelf.Service, shelf *view.Shelf, backend store.Backend) http.Handler {
	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(apphttp.NewRouter(svc, shelf, backend),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}

func mustOpenStorage(ctx context.Context, cfg *config.Config) store.Backend {
	backend, err := store.Open(ctx, store.Options{
		Driver:      cfg.StorageDriver,
		Key:         cfg.StorageKey,
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.SQLitePath,
		DSN:         cfg.DatabaseDSN,
		Timeout:     cfg.DBTimeout,
		AutoMigrate: cfg.AutoMigrate,
	})
	if err != nil {
		if cfg.StorageDriver == store.DriverPostgres {
			log.Fatalf("cannot open storage (%s): %v", store.RedactDSN(cfg.DatabaseDSN), err)
		}
		log.Fatalf("cannot open storage driver=%s: %v", cfg.StorageDriver, err)
	}
	log.Printf("storage connection OK driver=%s", cfg.StorageDriver)
	return backend
}
