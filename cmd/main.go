package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/session"
	"github.com/k0kubun/go-ansi"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	baseURL := flag.String("url", "", "Base URL of the staging server (overrides config)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Run against the defaults when there is no config file
		if !os.IsNotExist(err) {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *baseURL != "" {
		cfg.Server.BaseURL = *baseURL
	}

	level := slog.Level(cfg.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := session.New(cfg,
		session.WithOutput(os.Stdout),
		session.WithIndicatorOutput(ansi.NewAnsiStderr()),
		session.WithLogger(logger),
	)
	if err := s.Start(ctx); err != nil {
		slog.Error("Failed to start session", "error", err)
		os.Exit(1)
	}

	if err := s.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		slog.Error("Session failed", "error", err)
		os.Exit(1)
	}
}
