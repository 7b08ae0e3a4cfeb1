package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LPMON_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. An empty path yields
// the defaults. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow LPMON_SECTION_FIELD
// (e.g., LPMON_RUNNER_CONCURRENCY) and always take precedence over the file.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored. With no arguments ".env" is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %q: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Probe overrides
	envDuration("PROBE_TIMEOUT", &cfg.Probe.Timeout)
	envString("PROBE_USER_AGENT", &cfg.Probe.UserAgent)
	if val := getenv("PROBE_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Probe.MaxBodyBytes = n
		}
	}

	// Runner overrides
	envInt("RUNNER_CONCURRENCY", &cfg.Runner.Concurrency)
	envDuration("RUNNER_BATCH_DEADLINE", &cfg.Runner.BatchDeadline)

	// Storage overrides
	envString("STORAGE_BACKEND", &cfg.Storage.Backend)
	envString("STORAGE_SQLITE_PATH", &cfg.Storage.SQLite.Path)
	envString("STORAGE_SQLITE_DRIVER", &cfg.Storage.SQLite.Driver)
	envString("STORAGE_POSTGRES_DSN", &cfg.Storage.Postgres.DSN)
	envBool("STORAGE_POSTGRES_AUTO_MIGRATE", &cfg.Storage.Postgres.AutoMigrate)

	// Schedule overrides
	envBool("SCHEDULE_ENABLED", &cfg.Schedule.Enabled)
	envString("SCHEDULE_CRON", &cfg.Schedule.Cron)
	envBool("SCHEDULE_DRY_RUN", &cfg.Schedule.DryRun)

	// Server overrides
	envString("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	if val := getenv("SERVER_API_KEY"); val != "" {
		cfg.Server.APIKeys = append(cfg.Server.APIKeys, APIKeyConfig{Name: "env", Key: val})
	}

	// Events overrides
	envString("EVENTS_BACKEND", &cfg.Events.Backend)
	envString("EVENTS_KAFKA_TOPIC", &cfg.Events.Kafka.Topic)
	if val := getenv("EVENTS_KAFKA_BROKERS"); val != "" {
		var brokers []string
		for _, b := range strings.Split(val, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		cfg.Events.Kafka.Brokers = brokers
	}

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
}

func getenv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

func envString(key string, dst *string) {
	if val := getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
