package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/domain"
)

// FailingAPI answers 200 unless it was deployed with SHOULD_DIE=true, in
// which case every invocation answers 500. It exists to give the health
// probe something to watch.
type FailingAPI struct {
	Logger    *zap.Logger
	ShouldDie bool
}

func NewFailingAPI(l *zap.Logger, cfg config.FailingAPI) *FailingAPI {
	return &FailingAPI{Logger: l, ShouldDie: cfg.ShouldDie == "true"}
}

func (f *FailingAPI) Handle(_ context.Context) (domain.Response, error) {
	if f.ShouldDie {
		f.Logger.Warn("failing_api_dying")
		return domain.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start"}), nil
	}
	return domain.JSON(http.StatusOK, map[string]string{"message": "Success"}), nil
}
