package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/multierr"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/handler"
	"github.com/hamed0406/healthprobe/internal/lambdaapi"
	"github.com/hamed0406/healthprobe/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := multierr.Combine(cfg.FailingAPI.Validate(), cfg.Logging.Validate()); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	api := handler.NewFailingAPI(logger, cfg.FailingAPI)
	lambda.Start(lambdaapi.Wrap("failingapi", logger, api.Handle))
}
