package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"live-markets-service/internal/config"
	"live-markets-service/internal/logging"
	"live-markets-service/internal/service"
)

const appVersion = "dev"

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "live-markets-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := service.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		stop()
		os.Exit(1)
	}

	svc.Run(ctx)
}
