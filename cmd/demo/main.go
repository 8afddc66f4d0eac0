package main

import (
	"context"
	"io/fs"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/liquidity-pool/internal/config"
	"github.com/fleshka4/liquidity-pool/internal/logging"
	"github.com/fleshka4/liquidity-pool/internal/registry"
	"github.com/fleshka4/liquidity-pool/internal/scenario"
	"github.com/fleshka4/liquidity-pool/internal/service"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	case err != nil:
		log.Fatalf("config.Load: %v", err)
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	svc := service.NewPoolService(registry.New(), logger.Named("service"))

	if err := scenario.Setup(ctx, svc, cfg.Pools); err != nil {
		logger.Fatal("scenario.Setup", zap.Error(err))
	}
	if err := scenario.Run(ctx, svc, cfg.Scenario, os.Stdout); err != nil {
		logger.Fatal("scenario.Run", zap.Error(err))
	}
}
