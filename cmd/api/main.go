package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/handler"
	"github.com/hamed0406/healthprobe/internal/httpapi"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/probe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	err = multierr.Combine(
		cfg.Probe.Validate(),
		cfg.FailingAPI.Validate(),
		cfg.Server.Validate(),
		cfg.Logging.Validate(),
	)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	hc := handler.NewHealthCheck(logger, probe.NewHTTPChecker(cfg.Probe.Timeout), cfg.Probe)
	failing := handler.NewFailingAPI(logger, cfg.FailingAPI)
	page := handler.NewStatusPage(logger, cfg.FailingAPI)
	api := httpapi.NewServer(logger, hc.Handle, failing.Handle, page.Handle)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := httpapi.ListenAndServe(ctx, logger, cfg.Server.Addr, api.Router(cfg.Server)); err != nil {
		logger.Error("api_failed", zap.Error(err))
		os.Exit(1)
	}
}
