package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/ghostboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.CohortSize, convey.ShouldEqual, 49)
				convey.So(cfg.CacheBackend, convey.ShouldEqual, "memory")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GHOSTBOARD_ADDR", ":8080")
			_ = os.Setenv("GHOSTBOARD_COHORT_SIZE", "29")
			_ = os.Setenv("GHOSTBOARD_DEFAULT_PACK_ID", "17")
			_ = os.Setenv("GHOSTBOARD_TIMEZONE", "UTC")
			_ = os.Setenv("GHOSTBOARD_WINDOW_HOURS", "12.5")
			_ = os.Setenv("GHOSTBOARD_CACHE_BACKEND", "redis")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CohortSize, convey.ShouldEqual, 29)
				convey.So(cfg.DefaultPackID, convey.ShouldEqual, 17)
				convey.So(cfg.Timezone, convey.ShouldEqual, "UTC")
				convey.So(cfg.WindowHours, convey.ShouldEqual, 12.5)
				convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheRedis)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# local overrides
addr: ":9090"
cohort_size: 19
window_start_hour: 6
profile_base_url: "http://profiles.local"
rate_limit_rps: 5
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GHOSTBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML and keep defaults elsewhere", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CohortSize, convey.ShouldEqual, 19)
				convey.So(cfg.WindowStartHour, convey.ShouldEqual, 6.0)
				convey.So(cfg.ProfileBaseURL, convey.ShouldEqual, "http://profiles.local")
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 5.0)
				convey.So(cfg.WindowHours, convey.ShouldEqual, 14.0)
				convey.So(cfg.DefaultPackID, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\ncohort_size: 19\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GHOSTBOARD_CONFIG", tmpFile)
			_ = os.Setenv("GHOSTBOARD_COHORT_SIZE", "39")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CohortSize, convey.ShouldEqual, 39)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GHOSTBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("GHOSTBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("GHOSTBOARD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a window that crosses midnight", func() {
			_ = os.Setenv("GHOSTBOARD_WINDOW_START_HOUR", "20")
			_ = os.Setenv("GHOSTBOARD_WINDOW_HOURS", "14")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "end by midnight")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a window ending exactly at midnight", func() {
			_ = os.Setenv("GHOSTBOARD_WINDOW_START_HOUR", "10")
			_ = os.Setenv("GHOSTBOARD_WINDOW_HOURS", "14")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WindowStartHour, convey.ShouldEqual, 10.0)
			})
		})

		convey.Convey("When loading config with an unknown timezone", func() {
			_ = os.Setenv("GHOSTBOARD_TIMEZONE", "Nowhere/Land")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("GHOSTBOARD_COHORT_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"GHOSTBOARD_CONFIG",
		"GHOSTBOARD_ADDR",
		"GHOSTBOARD_COHORT_SIZE",
		"GHOSTBOARD_DEFAULT_PACK_ID",
		"GHOSTBOARD_TIMEZONE",
		"GHOSTBOARD_WINDOW_START_HOUR",
		"GHOSTBOARD_WINDOW_HOURS",
		"GHOSTBOARD_CACHE_BACKEND",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "ghostboard-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
