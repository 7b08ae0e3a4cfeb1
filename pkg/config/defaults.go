package config

import "time"

// Default values for configuration fields.
const (
	// Probe defaults
	DefaultProbeTimeout      = 3 * time.Second
	DefaultProbeUserAgent    = "swapers/healthcheck"
	DefaultProbeMaxBodyBytes = int64(4096)

	// Runner defaults
	DefaultRunnerConcurrency   = 10
	DefaultRunnerBatchDeadline = 30 * time.Second

	// Storage defaults
	DefaultStorageBackend       = "memory"
	DefaultSQLitePath           = "data/providers.db"
	DefaultSQLiteDriver         = "sqlite"
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultPostgresMaxOpenConns = 10

	// Schedule defaults
	DefaultScheduleCron = "*/5 * * * *"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:9090"
	DefaultShutdownTimeout = 10 * time.Second

	// Events defaults
	DefaultEventsBackend     = "none"
	DefaultKafkaTopic        = "provider-availability"
	DefaultKafkaWriteTimeout = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "lpmon"
	DefaultMetricsSubsystem = "health"
	DefaultTracingSampler   = "ratio"
	DefaultTracingRatio     = 1.0
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingTimeout   = 10 * time.Second
	DefaultTracingService   = "lpmon"
)

// DefaultProbeDurationBuckets covers fast pings up to the probe timeout.
var DefaultProbeDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
// Fields that were explicitly set are left unchanged.
func ApplyDefaults(cfg *Config) {
	// Probe defaults
	if cfg.Probe.Timeout == 0 {
		cfg.Probe.Timeout = DefaultProbeTimeout
	}
	if cfg.Probe.UserAgent == "" {
		cfg.Probe.UserAgent = DefaultProbeUserAgent
	}
	if cfg.Probe.MaxBodyBytes == 0 {
		cfg.Probe.MaxBodyBytes = DefaultProbeMaxBodyBytes
	}

	// Runner defaults
	if cfg.Runner.Concurrency == 0 {
		cfg.Runner.Concurrency = DefaultRunnerConcurrency
	}
	if cfg.Runner.BatchDeadline == 0 {
		cfg.Runner.BatchDeadline = DefaultRunnerBatchDeadline
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Storage.SQLite.Driver == "" {
		cfg.Storage.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Storage.SQLite.BusyTimeout == 0 {
		cfg.Storage.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Storage.Postgres.MaxOpenConns == 0 {
		cfg.Storage.Postgres.MaxOpenConns = DefaultPostgresMaxOpenConns
	}

	// Schedule defaults
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = DefaultScheduleCron
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Events defaults
	if cfg.Events.Backend == "" {
		cfg.Events.Backend = DefaultEventsBackend
	}
	if cfg.Events.Kafka.Topic == "" {
		cfg.Events.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Events.Kafka.WriteTimeout == 0 {
		cfg.Events.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.ProbeDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.ProbeDurationBuckets = append([]float64(nil), DefaultProbeDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
}
