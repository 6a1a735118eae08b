package handler

import (
	"context"
	"errors"

	"github.com/hamed0406/healthprobe/internal/domain"
	"github.com/hamed0406/healthprobe/internal/probe"
)

// Func is the shape every handler exposes to the platform adapters.
type Func func(ctx context.Context) (domain.Response, error)

// VerdictOf tells the three invocation outcomes apart.
func VerdictOf(resp domain.Response, err error) domain.Verdict {
	if err != nil {
		return domain.VerdictProbeError
	}
	if resp.StatusCode >= 500 {
		return domain.VerdictUnhealthy
	}
	return domain.VerdictHealthy
}

// IsProbeError reports whether err means the probe could not run at all.
func IsProbeError(err error) bool {
	var te *probe.TransportError
	return errors.As(err, &te)
}
