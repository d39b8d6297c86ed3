package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/board/internal/config"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	mw "github.com/inamate/board/internal/middleware"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/session"
	"github.com/inamate/board/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(log)
	engine.SetLogger(log.With("component", "engine"))
	scene.SetLogger(log.With("component", "scene"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, closeKV, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeKV()

	fill, err := document.ParseColor(cfg.DefaultFill)
	if err != nil {
		slog.Error("parse default fill", "error", err)
		os.Exit(1)
	}

	hub := session.NewHub()
	boards := session.NewHandler(hub, kv, cfg.Origins(), engine.WithLastFill(fill))

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	boards.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server", "sessions", hub.Len())

		// Hijacked websocket connections are not tracked by Shutdown.
		hub.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.KV, func(), error) {
	switch cfg.Store {
	case config.StoreFile:
		kv, err := storage.NewFile(cfg.DataDir)
		return kv, func() {}, err
	case config.StorePostgres:
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv, err := storage.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	}
	return storage.NewMemory(), func() {}, nil
}
