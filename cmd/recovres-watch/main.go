package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recovres/internal/config"
	"recovres/internal/listener"
	"recovres/internal/pipeline"
	"recovres/internal/source"
	"recovres/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	if cfg.NotifyOutboxDir != "" {
		must(cfg.Require("NOTIFY_TO", cfg.NotifyTo))
	}
	log := cfg.Logger()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	processor := pipeline.NewProcessingService(db, cfg, source.NewFetcher(cfg, log), log)
	svc := listener.NewService(processor, cfg, log)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.WithField("intervalSec", cfg.WatchIntervalSec).Info("watching registry")
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
