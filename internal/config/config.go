package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// DefaultProbeTimeout bounds the single outbound request. The Lambda itself
// is allowed 29s, so a hanging target is reported well before the platform
// kills the invocation.
const DefaultProbeTimeout = 5 * time.Second

type Probe struct {
	Host               string        `mapstructure:"host"`     // HEALTH_ENDPOINT_HOST, e.g. "d-abc.execute-api.eu-west-1.amazonaws.com"
	Path               string        `mapstructure:"path"`     // HEALTH_ENDPOINT_PATH, leading "/" optional
	OverrideHostHeader string        `mapstructure:"override"` // OVERRIDE_HOST_HEADER, empty means none
	Timeout            time.Duration `mapstructure:"timeout"`  // HEALTH_CHECK_TIMEOUT, e.g. "5s"
}

type FailingAPI struct {
	ShouldDie string `mapstructure:"should_die"` // SHOULD_DIE, only "true" fails
	Region    string `mapstructure:"region"`     // AWS_REGION
}

type Server struct {
	Addr           string   `mapstructure:"addr"`            // API_ADDR, e.g. "127.0.0.1:8080"
	AllowedOrigins []string `mapstructure:"allowed_origins"` // ALLOWED_ORIGINS, comma-separated; empty allows all
	ProbeRPM       int      `mapstructure:"probe_rpm"`       // PROBE_RPM, probe calls per client per minute; 0 disables
	ProbeBurst     int      `mapstructure:"probe_burst"`     // PROBE_BURST
	TrustProxy     bool     `mapstructure:"trust_proxy"`     // TRUST_PROXY, take the client address from X-Forwarded-For / X-Real-IP
}

type Logging struct {
	Level  string `mapstructure:"level"`  // LOG_LEVEL
	Format string `mapstructure:"format"` // LOG_FORMAT
	Dir    string `mapstructure:"dir"`    // LOG_DIR, empty means stdout only
}

type Config struct {
	Probe      Probe      `mapstructure:"probe"`
	FailingAPI FailingAPI `mapstructure:"failing_api"`
	Server     Server     `mapstructure:"server"`
	Logging    Logging    `mapstructure:"logging"`
}

// envBindings maps config keys to the environment variables the deployed
// functions are configured with.
var envBindings = map[string]string{
	"probe.host":             "HEALTH_ENDPOINT_HOST",
	"probe.path":             "HEALTH_ENDPOINT_PATH",
	"probe.override":         "OVERRIDE_HOST_HEADER",
	"probe.timeout":          "HEALTH_CHECK_TIMEOUT",
	"failing_api.should_die": "SHOULD_DIE",
	"failing_api.region":     "AWS_REGION",
	"server.addr":            "API_ADDR",
	"server.allowed_origins": "ALLOWED_ORIGINS",
	"server.probe_rpm":       "PROBE_RPM",
	"server.probe_burst":     "PROBE_BURST",
	"server.trust_proxy":     "TRUST_PROXY",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.dir":            "LOG_DIR",
}

// Load reads healthprobe.yaml (if any) and the environment. Environment
// values win over the file. Nothing is validated here; each binary validates
// the sections it actually uses.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("probe.timeout", DefaultProbeTimeout)
	v.SetDefault("failing_api.should_die", "false")
	v.SetDefault("failing_api.region", "local")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.probe_rpm", 60)
	v.SetDefault("server.probe_burst", 10)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatJSON)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("HEALTHPROBE_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("healthprobe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// viper reads an empty variable as unset and would fall back to the file.
	// The functions are deployed with OVERRIDE_HOST_HEADER="" to mean no
	// override, so an explicitly empty value must still win.
	if override, ok := os.LookupEnv(envBindings["probe.override"]); ok {
		cfg.Probe.OverrideHostHeader = override
	}
	cfg.Server.AllowedOrigins = trimAll(cfg.Server.AllowedOrigins)
	return &cfg, nil
}

func (p Probe) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Host, validation.Required, validation.By(validateHost)),
		validation.Field(&p.Path, validation.Required),
		validation.Field(&p.OverrideHostHeader, validation.By(validateHost)),
		validation.Field(&p.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

func (f FailingAPI) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ShouldDie, validation.In("true", "false")),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required, validation.By(validateHostPort)),
		validation.Field(&s.ProbeRPM, validation.Min(0)),
		validation.Field(&s.ProbeBurst, validation.When(s.ProbeRPM > 0, validation.Required, validation.Min(1))),
	)
}

func (l Logging) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&l.Format,
			validation.Required,
			validation.In(LogFormatJSON, LogFormatConsole),
		),
	)
}

// validateHost accepts a bare hostname or IP, optionally with a port.
// URLs are rejected: the probe always speaks HTTPS to the host as given.
func validateHost(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if strings.Contains(s, "://") || strings.ContainsAny(s, "/ ") {
		return validation.NewError("validation_invalid_host", "must be a host name, not a URL")
	}

	host := s
	if h, port, err := net.SplitHostPort(s); err == nil {
		if port == "" {
			return validation.NewError("validation_invalid_port", "port cannot be empty")
		}
		host = h
	}
	if err := is.Host.Validate(host); err != nil {
		return validation.NewError("validation_invalid_host", "invalid host")
	}
	return nil
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}
	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}
	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
