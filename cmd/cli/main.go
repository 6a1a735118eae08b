// Command cli runs the health probe once, in-process, with the same
// configuration the Lambda would get, and prints the function response.
//
// Exit status: 0 healthy, 1 unhealthy, 2 the probe could not run, 3 invalid
// configuration.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/domain"
	"github.com/hamed0406/healthprobe/internal/handler"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/probe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.Probe.Host, "host", cfg.Probe.Host, "target host (HEALTH_ENDPOINT_HOST)")
	flag.StringVar(&cfg.Probe.Path, "path", cfg.Probe.Path, "target path (HEALTH_ENDPOINT_PATH)")
	flag.StringVar(&cfg.Probe.OverrideHostHeader, "override", cfg.Probe.OverrideHostHeader, "Host header to send (OVERRIDE_HOST_HEADER)")
	flag.DurationVar(&cfg.Probe.Timeout, "timeout", cfg.Probe.Timeout, "request timeout (HEALTH_CHECK_TIMEOUT)")
	flag.Parse()

	if err := cfg.Probe.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(domain.ExitConfigError)
	}

	cfg.Logging.Format = config.LogFormatConsole
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	hc := handler.NewHealthCheck(logger, probe.NewHTTPChecker(cfg.Probe.Timeout), cfg.Probe)
	resp, err := hc.Handle(context.Background())
	verdict := handler.VerdictOf(resp, err)

	if err != nil {
		logger.Error("probe_error", zap.Error(err))
	} else {
		out, _ := json.Marshal(resp)
		fmt.Println(string(out))
	}
	logger.Info("verdict", zap.String("verdict", string(verdict)))
	_ = logger.Sync()
	os.Exit(verdict.ExitCode())
}
