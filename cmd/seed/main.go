package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"storefront-gateway/internal/config"
	"storefront-gateway/internal/db"
	"storefront-gateway/internal/logging"
	"storefront-gateway/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatal("apply seed", zap.Error(err))
	}

	logger.Info("seed data applied")
}
