package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lpmon.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
probe:
  timeout: "2s"
runner:
  concurrency: 16
  batch_deadline: "45s"
registry:
  endpoints:
    - provider: kraken
      status_url: "https://api.kraken.com/0/public/SystemStatus"
      time_url: "https://api.kraken.com/0/public/Time"
      maintenance:
        keywords: ["maintenance", "cancel_only"]
policies:
  EXCHANGER:
    mode: probe
catalog:
  home_visible: [BINANCE, BYBIT]
  providers:
    - id: KRAKEN
      name: Kraken
      kind: CEX
storage:
  backend: sqlite
  sqlite:
    path: "/var/lib/lpmon/providers.db"
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Probe.Timeout != 2*time.Second {
		t.Errorf("expected timeout %v, got %v", 2*time.Second, cfg.Probe.Timeout)
	}
	if cfg.Probe.UserAgent != DefaultProbeUserAgent {
		t.Errorf("expected default user agent, got %q", cfg.Probe.UserAgent)
	}
	if cfg.Runner.Concurrency != 16 {
		t.Errorf("expected concurrency 16, got %d", cfg.Runner.Concurrency)
	}
	if len(cfg.Registry.Endpoints) != 1 || cfg.Registry.Endpoints[0].Provider != "kraken" {
		t.Fatalf("unexpected endpoints: %+v", cfg.Registry.Endpoints)
	}
	if got := cfg.Registry.Endpoints[0].Maintenance.Keywords; len(got) != 2 {
		t.Errorf("expected 2 keywords, got %v", got)
	}
	if cfg.Policies["EXCHANGER"].Mode != "probe" {
		t.Errorf("expected EXCHANGER policy override, got %+v", cfg.Policies)
	}
	if cfg.Storage.SQLite.Driver != DefaultSQLiteDriver {
		t.Errorf("expected default driver, got %q", cfg.Storage.SQLite.Driver)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Runner.Concurrency != DefaultRunnerConcurrency {
		t.Errorf("expected default concurrency, got %d", cfg.Runner.Concurrency)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := LoadConfig(writeConfig(t, "probe: [unclosed")); err == nil {
		t.Error("expected error for invalid yaml")
	}

	_, err := LoadConfig(writeConfig(t, `
runner:
  concurrency: -1
storage:
  backend: mongodb
`))
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
runner:
  concurrency: 4
`)

	t.Setenv("LPMON_RUNNER_CONCURRENCY", "32")
	t.Setenv("LPMON_PROBE_TIMEOUT", "750ms")
	t.Setenv("LPMON_STORAGE_BACKEND", "sqlite")
	t.Setenv("LPMON_EVENTS_BACKEND", "kafka")
	t.Setenv("LPMON_EVENTS_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("LPMON_SCHEDULE_ENABLED", "true")
	t.Setenv("LPMON_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Runner.Concurrency != 32 {
		t.Errorf("expected concurrency 32, got %d", cfg.Runner.Concurrency)
	}
	if cfg.Probe.Timeout != 750*time.Millisecond {
		t.Errorf("expected timeout 750ms, got %v", cfg.Probe.Timeout)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}
	if strings.Join(cfg.Events.Kafka.Brokers, ",") != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Events.Kafka.Brokers)
	}
	if !cfg.Schedule.Enabled {
		t.Error("expected schedule enabled")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	t.Setenv("LPMON_STORAGE_BACKEND", "postgres")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error for postgres without dsn")
	}
	if !strings.Contains(err.Error(), "storage.postgres.dsn") {
		t.Errorf("expected dsn field in error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("LPMON_TEST_DOTENV_VALUE=from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LPMON_TEST_DOTENV_VALUE") })

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("LPMON_TEST_DOTENV_VALUE"); got != "from-file" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestHolder_Reload(t *testing.T) {
	path := writeConfig(t, "runner:\n  concurrency: 3\n")

	h, err := NewHolder(path)
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	if h.Get().Runner.Concurrency != 3 {
		t.Fatalf("expected concurrency 3, got %d", h.Get().Runner.Concurrency)
	}

	if err := os.WriteFile(path, []byte("runner:\n  concurrency: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if h.Get().Runner.Concurrency != 7 {
		t.Errorf("expected concurrency 7, got %d", h.Get().Runner.Concurrency)
	}

	if err := os.WriteFile(path, []byte("runner:\n  concurrency: 0\n  batch_deadline: -1s\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if h.Get().Runner.Concurrency != 7 {
		t.Errorf("expected previous config kept, got concurrency %d", h.Get().Runner.Concurrency)
	}
}
