package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/domain"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/probe"
)

const healthCheckFailed = "Health check failed"

type HealthCheck struct {
	Logger  *zap.Logger
	Checker probe.Checker
	Config  config.Probe
}

func NewHealthCheck(l *zap.Logger, c probe.Checker, cfg config.Probe) *HealthCheck {
	return &HealthCheck{Logger: l, Checker: c, Config: cfg}
}

// Handle runs one probe. A target answering >= 400 yields 503 with a JSON
// error body, anything below yields 204. Transport failures are returned
// unchanged as errors so the platform reports a failed invocation instead of
// a clean 503.
func (h *HealthCheck) Handle(ctx context.Context) (domain.Response, error) {
	req := probe.NewRequest(h.Config.Host, h.Config.Path, h.Config.OverrideHostHeader)

	log := logging.FromContext(ctx, h.Logger).With(
		zap.String("probe_id", uuid.NewString()),
		zap.String("host", req.TargetHost),
		zap.String("path", req.TargetPath),
	)
	log.Info("health_check_start",
		zap.Bool("override", req.HasOverride()),
		zap.String("override_host", req.HostHeaderOverride),
	)

	out, err := h.Checker.Check(ctx, req)
	if err != nil {
		return domain.Response{}, err
	}

	if !out.Healthy() {
		log.Warn("health_check_failed",
			zap.Int("status", out.StatusCode),
			zap.String("body", out.Body),
			zap.Any("headers", out.Headers),
		)
		return domain.JSON(http.StatusServiceUnavailable, map[string]string{"error": healthCheckFailed}), nil
	}

	log.Info("health_check_succeeded", zap.Int("status", out.StatusCode))
	return domain.NoContent(), nil
}
