package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fleshka4/liquidity-pool/internal/config"
	"github.com/fleshka4/liquidity-pool/internal/logging"
	"github.com/fleshka4/liquidity-pool/internal/registry"
	"github.com/fleshka4/liquidity-pool/internal/scenario"
	"github.com/fleshka4/liquidity-pool/internal/service"
	transport "github.com/fleshka4/liquidity-pool/internal/transport/http"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config.Load: %v", err)
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewPoolService(registry.New(), logger.Named("service"))
	if err := scenario.Setup(ctx, svc, cfg.Pools); err != nil {
		logger.Fatal("scenario.Setup", zap.Error(err))
	}

	srv := transport.NewServer(svc, cfg.Server, logger.Named("http"))
	if err := srv.ListenAndServe(ctx, cfg.Server.ListenAddr); err != nil {
		logger.Fatal("srv.ListenAndServe", zap.Error(err))
	}
}
