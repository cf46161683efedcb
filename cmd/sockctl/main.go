package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sockshoplabs/storefront-go/pkg/config"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sockctl"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sockctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := execute(context.Background(), cfg, logg); err != nil {
		logg.Error(context.Background(), "command failed", err)
		os.Exit(1)
	}
}
