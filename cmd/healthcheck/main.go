package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/multierr"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/handler"
	"github.com/hamed0406/healthprobe/internal/lambdaapi"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/probe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	// missing host/path is an init failure, never a per-invocation one
	if err := multierr.Combine(cfg.Probe.Validate(), cfg.Logging.Validate()); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	hc := handler.NewHealthCheck(logger, probe.NewHTTPChecker(cfg.Probe.Timeout), cfg.Probe)
	lambda.Start(lambdaapi.Wrap("healthcheck", logger, hc.Handle))
}
