package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/server"
	"github.com/jaki95/songripper/internal/storage"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	port := flag.String("port", "", "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	// Create and start server
	srv := server.New(cfg, store)
	err = srv.Start(cfg.Server.Port)
	closeStorage(store)
	if err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// closeStorage releases backends that hold a client, such as GCS.
func closeStorage(store storage.Storage) {
	c, ok := store.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}
