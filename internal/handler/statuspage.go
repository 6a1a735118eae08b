package handler

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var statusTemplate = template.Must(template.ParseFS(templateFS, "templates/status.html.tmpl"))

type statusData struct {
	Region  string
	Healthy bool
}

// StatusPage is the HTML variant of FailingAPI: it renders a page naming the
// region that served it, with a 500 status when SHOULD_DIE=true.
type StatusPage struct {
	Logger    *zap.Logger
	ShouldDie bool
	Region    string
}

func NewStatusPage(l *zap.Logger, cfg config.FailingAPI) *StatusPage {
	return &StatusPage{Logger: l, ShouldDie: cfg.ShouldDie == "true", Region: cfg.Region}
}

func (s *StatusPage) Handle(_ context.Context) (domain.Response, error) {
	status := http.StatusOK
	if s.ShouldDie {
		status = http.StatusInternalServerError
		s.Logger.Warn("status_page_dying", zap.String("region", s.Region))
	}

	var buf bytes.Buffer
	if err := statusTemplate.Execute(&buf, statusData{Region: s.Region, Healthy: !s.ShouldDie}); err != nil {
		return domain.Response{}, fmt.Errorf("render status page: %w", err)
	}
	return domain.HTML(status, buf.String()), nil
}
