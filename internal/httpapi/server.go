package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/domain"
	"github.com/hamed0406/healthprobe/internal/handler"
	apimw "github.com/hamed0406/healthprobe/internal/httpapi/middleware"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/version"
)

// Server exposes the function handlers over plain HTTP for local runs.
type Server struct {
	Logger      *zap.Logger
	HealthCheck handler.Func
	FailingAPI  handler.Func
	StatusPage  handler.Func
}

func NewServer(l *zap.Logger, healthCheck, failingAPI, statusPage handler.Func) *Server {
	return &Server{Logger: l, HealthCheck: healthCheck, FailingAPI: failingAPI, StatusPage: statusPage}
}

func (s *Server) Router(cfg config.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(corsHandler(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/version", s.handleVersion)

	r.With(apimw.RateLimit(s.Logger, cfg.ProbeRPM, cfg.ProbeBurst)).
		Get("/health-check", s.invoke("healthcheck", s.HealthCheck))
	r.Get("/failing-api", s.invoke("failingapi", s.FailingAPI))
	r.Get("/status-page", s.invoke("statuspage", s.StatusPage))

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return cors.AllowAll().Handler
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
	})
}

// invoke runs fn for one HTTP request. A probe that could not run answers
// 502 so it stays distinguishable from the handler's own 503.
func (s *Server) invoke(name string, fn handler.Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.Logger.With(zap.String("function", name), zap.String("request_id", chimw.GetReqID(r.Context())))
		resp, err := fn(logging.WithContext(r.Context(), log))
		if err != nil {
			status, msg := http.StatusInternalServerError, "internal error"
			if handler.IsProbeError(err) {
				status, msg = http.StatusBadGateway, "probe could not run"
			}
			log.Error("invocation_failed",
				zap.Int("status", status),
				zap.Error(err),
			)
			WriteResponse(w, domain.JSON(status, map[string]string{"error": msg}))
			return
		}

		log.Info("invocation_done",
			zap.Int("status", resp.StatusCode),
		)
		WriteResponse(w, resp)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

// WriteResponse copies a handler response onto w. Bodies without an explicit
// content type are JSON.
func WriteResponse(w http.ResponseWriter, resp domain.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if resp.Body != "" && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
	}
}
