package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hamed0406/healthprobe/internal/config"
)

var managedEnv = []string{
	"HEALTH_ENDPOINT_HOST",
	"HEALTH_ENDPOINT_PATH",
	"OVERRIDE_HOST_HEADER",
	"HEALTH_CHECK_TIMEOUT",
	"SHOULD_DIE",
	"AWS_REGION",
	"API_ADDR",
	"ALLOWED_ORIGINS",
	"PROBE_RPM",
	"PROBE_BURST",
	"TRUST_PROXY",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_DIR",
	"HEALTHPROBE_CONFIG",
}

var _ = Describe("Config", func() {
	saved := map[string]string{}

	BeforeEach(func() {
		for _, k := range managedEnv {
			if v, ok := os.LookupEnv(k); ok {
				saved[k] = v
			}
			os.Unsetenv(k)
		}
	})

	AfterEach(func() {
		for _, k := range managedEnv {
			os.Unsetenv(k)
		}
		for k, v := range saved {
			os.Setenv(k, v)
		}
		saved = map[string]string{}
	})

	Describe("Load", func() {
		Context("with an empty environment", func() {
			It("should fall back to defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.Host).To(BeEmpty())
				Expect(cfg.Probe.Timeout).To(Equal(config.DefaultProbeTimeout))
				Expect(cfg.FailingAPI.ShouldDie).To(Equal("false"))
				Expect(cfg.FailingAPI.Region).To(Equal("local"))
				Expect(cfg.Server.Addr).To(Equal("127.0.0.1:8080"))
				Expect(cfg.Server.AllowedOrigins).To(BeEmpty())
				Expect(cfg.Server.ProbeRPM).To(Equal(60))
				Expect(cfg.Server.ProbeBurst).To(Equal(10))
				Expect(cfg.Server.TrustProxy).To(BeFalse())
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelInfo))
				Expect(cfg.Logging.Format).To(Equal(config.LogFormatJSON))
			})
		})

		Context("with the function environment", func() {
			BeforeEach(func() {
				os.Setenv("HEALTH_ENDPOINT_HOST", "d-7x9nqpbnl7.execute-api.eu-west-1.amazonaws.com")
				os.Setenv("HEALTH_ENDPOINT_PATH", "person")
				os.Setenv("OVERRIDE_HOST_HEADER", "cattle.prod.example.com")
				os.Setenv("HEALTH_CHECK_TIMEOUT", "2500ms")
				os.Setenv("SHOULD_DIE", "true")
				os.Setenv("AWS_REGION", "eu-north-1")
				os.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
			})

			It("should read every bound variable", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.Host).To(Equal("d-7x9nqpbnl7.execute-api.eu-west-1.amazonaws.com"))
				Expect(cfg.Probe.Path).To(Equal("person"))
				Expect(cfg.Probe.OverrideHostHeader).To(Equal("cattle.prod.example.com"))
				Expect(cfg.Probe.Timeout).To(Equal(2500 * time.Millisecond))
				Expect(cfg.FailingAPI.ShouldDie).To(Equal("true"))
				Expect(cfg.FailingAPI.Region).To(Equal("eu-north-1"))
				Expect(cfg.Server.AllowedOrigins).To(Equal([]string{"https://a.example.com", "https://b.example.com"}))
			})

			It("should produce a valid probe section", func() {
				cfg, _ := config.Load()
				Expect(cfg.Probe.Validate()).To(Succeed())
			})
		})

		Context("with a config file", func() {
			var dir string

			BeforeEach(func() {
				dir = GinkgoT().TempDir()
				content := `
probe:
  host: "origin.example.com"
  path: "/status"
  override: "origin.internal.example.com"
  timeout: "3s"
logging:
  level: "debug"
`
				path := filepath.Join(dir, "healthprobe.yaml")
				Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
				os.Setenv("HEALTHPROBE_CONFIG", path)
			})

			It("should load values from the file", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.Host).To(Equal("origin.example.com"))
				Expect(cfg.Probe.Timeout).To(Equal(3 * time.Second))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
			})

			It("should let the environment win", func() {
				os.Setenv("HEALTH_ENDPOINT_PATH", "health")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.Path).To(Equal("health"))
			})

			It("should take the override from the file when the variable is unset", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.OverrideHostHeader).To(Equal("origin.internal.example.com"))
			})

			It("should let an empty OVERRIDE_HOST_HEADER clear the file override", func() {
				os.Setenv("OVERRIDE_HOST_HEADER", "")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Probe.OverrideHostHeader).To(BeEmpty())
			})
		})

		Context("with a missing explicit config file", func() {
			It("should fail loudly", func() {
				os.Setenv("HEALTHPROBE_CONFIG", filepath.Join(GinkgoT().TempDir(), "nope.yaml"))
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Probe.Validate", func() {
		valid := func() config.Probe {
			return config.Probe{Host: "example.com", Path: "health", Timeout: time.Second}
		}

		It("should accept a host with a port", func() {
			p := valid()
			p.Host = "127.0.0.1:8443"
			Expect(p.Validate()).To(Succeed())
		})

		It("should require a host", func() {
			p := valid()
			p.Host = ""
			Expect(p.Validate()).To(MatchError(ContainSubstring("Host")))
		})

		It("should reject a URL as host", func() {
			p := valid()
			p.Host = "https://example.com"
			Expect(p.Validate()).To(HaveOccurred())
		})

		It("should require a path", func() {
			p := valid()
			p.Path = ""
			Expect(p.Validate()).To(MatchError(ContainSubstring("Path")))
		})

		It("should treat an empty override as absent", func() {
			p := valid()
			p.OverrideHostHeader = ""
			Expect(p.Validate()).To(Succeed())
		})

		It("should reject a malformed override", func() {
			p := valid()
			p.OverrideHostHeader = "not a host"
			Expect(p.Validate()).To(HaveOccurred())
		})

		It("should require a positive timeout", func() {
			p := valid()
			p.Timeout = 0
			Expect(p.Validate()).To(HaveOccurred())
		})
	})

	Describe("other sections", func() {
		It("should reject unknown SHOULD_DIE values", func() {
			Expect(config.FailingAPI{ShouldDie: "maybe"}.Validate()).To(HaveOccurred())
			Expect(config.FailingAPI{ShouldDie: "true"}.Validate()).To(Succeed())
			Expect(config.FailingAPI{}.Validate()).To(Succeed())
		})

		It("should require host:port for the server", func() {
			Expect(config.Server{Addr: "8080"}.Validate()).To(HaveOccurred())
			Expect(config.Server{Addr: ":8080"}.Validate()).To(Succeed())
			Expect(config.Server{Addr: ":8080", ProbeRPM: 30}.Validate()).To(HaveOccurred())
			Expect(config.Server{Addr: ":8080", ProbeRPM: 30, ProbeBurst: 5}.Validate()).To(Succeed())
		})

		It("should reject unknown log levels and formats", func() {
			Expect(config.Logging{Level: "verbose", Format: "json"}.Validate()).To(HaveOccurred())
			Expect(config.Logging{Level: "info", Format: "xml"}.Validate()).To(HaveOccurred())
			Expect(config.Logging{Level: "info", Format: "console"}.Validate()).To(Succeed())
		})
	})
})
