// Command preflight loads the configuration every binary would see and
// reports, per section, whether it would start. It exits 1 on any error.
package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/hamed0406/healthprobe/internal/config"
)

func main() {
	var errs error
	fail := func(section string, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, "✖", section+":", err)
			errs = multierr.Append(errs, err)
		}
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail("load", err)
		os.Exit(1)
	}

	// healthcheck function
	if err := cfg.Probe.Validate(); err != nil {
		fail("healthcheck (HEALTH_ENDPOINT_HOST / HEALTH_ENDPOINT_PATH / OVERRIDE_HOST_HEADER / HEALTH_CHECK_TIMEOUT)", err)
	} else {
		ok(fmt.Sprintf("probe target https://%s%s (timeout %s)", cfg.Probe.Host, cfg.Probe.Path, cfg.Probe.Timeout))
		if !strings.HasPrefix(cfg.Probe.Path, "/") {
			warn("HEALTH_ENDPOINT_PATH has no leading '/'; it will be prefixed.")
		}
		if cfg.Probe.OverrideHostHeader == "" {
			warn("OVERRIDE_HOST_HEADER empty; Host header will be " + cfg.Probe.Host + ".")
		} else {
			ok("Host header override " + cfg.Probe.OverrideHostHeader)
		}
	}

	// failingapi / statuspage functions
	if err := cfg.FailingAPI.Validate(); err != nil {
		fail("failingapi (SHOULD_DIE)", err)
	} else {
		if cfg.FailingAPI.ShouldDie == "true" {
			warn("SHOULD_DIE=true; failing-api and status-page will answer 500.")
		}
		ok("region " + cfg.FailingAPI.Region)
	}

	// local api
	if err := cfg.Server.Validate(); err != nil {
		fail("api (API_ADDR / PROBE_RPM / PROBE_BURST)", err)
	} else {
		ok("API_ADDR=" + cfg.Server.Addr)
		if len(cfg.Server.AllowedOrigins) == 0 {
			warn("ALLOWED_ORIGINS empty; the local api allows any origin.")
		}
		if cfg.Server.TrustProxy {
			warn("TRUST_PROXY=true; rate limiting keys on X-Forwarded-For. Only enable behind a proxy.")
		}
	}

	if err := cfg.Logging.Validate(); err != nil {
		fail("logging (LOG_LEVEL / LOG_FORMAT)", err)
	} else if cfg.Logging.Dir == "" {
		warn("LOG_DIR empty; logs go to stdout only.")
	}

	if errs != nil {
		fmt.Fprintf(os.Stderr, "preflight failed: %d problem(s)\n", len(multierr.Errors(errs)))
		os.Exit(1)
	}
	ok("preflight passed")
}
