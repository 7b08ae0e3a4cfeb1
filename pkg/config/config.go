package config

import "time"

// Config is the root configuration structure for lpmon.
// It contains the probe, runner, registry, storage, scheduling, event and
// telemetry sections.
type Config struct {
	// Probe contains HTTP prober settings applied to every probe call.
	Probe ProbeConfig `yaml:"probe"`

	// Runner contains batch runner settings such as pool size and the
	// overall batch deadline.
	Runner RunnerConfig `yaml:"runner"`

	// Registry contains probe endpoint configuration. Entries here extend
	// the built-in endpoint table.
	Registry RegistryConfig `yaml:"registry"`

	// Policies overrides the availability policy for individual kinds.
	// Keys are provider kinds (e.g., "EXCHANGER").
	Policies map[string]PolicyConfig `yaml:"policies"`

	// Catalog controls which provider records are seeded into the store.
	Catalog CatalogConfig `yaml:"catalog"`

	// Storage selects and configures the provider record store.
	Storage StorageConfig `yaml:"storage"`

	// Schedule contains cron settings for periodic runs in serve mode.
	Schedule ScheduleConfig `yaml:"schedule"`

	// Server contains the HTTP listener settings for serve mode.
	Server ServerConfig `yaml:"server"`

	// Events configures where availability transitions are published.
	Events EventsConfig `yaml:"events"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProbeConfig contains configuration for the HTTP prober.
type ProbeConfig struct {
	// Timeout bounds every probe call. A probe that does not complete in
	// time is reported as a network failure.
	// Default: 3s
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with every probe request.
	// Default: "swapers/healthcheck"
	UserAgent string `yaml:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read. Status
	// endpoint predicates only see this prefix.
	// Default: 4096
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// RunnerConfig contains configuration for batch runs.
type RunnerConfig struct {
	// Concurrency is the number of providers checked in parallel.
	// Default: 10
	Concurrency int `yaml:"concurrency"`

	// BatchDeadline is the soft deadline for a whole run. Providers not
	// finished by then are reported as timed out.
	// Default: 30s
	BatchDeadline time.Duration `yaml:"batch_deadline"`
}

// RegistryConfig contains probe endpoint configuration.
type RegistryConfig struct {
	// DisableDefaults drops the built-in endpoint table, leaving only the
	// endpoints listed below.
	DisableDefaults bool `yaml:"disable_defaults"`

	// Endpoints adds providers to the registry. A provider already present
	// in the built-in table cannot be redefined.
	Endpoints []EndpointConfig `yaml:"endpoints"`
}

// EndpointConfig describes the probes for one provider.
type EndpointConfig struct {
	// Provider is the provider identity (e.g., "KRAKEN").
	Provider string `yaml:"provider"`

	// StatusURL is the optional status/maintenance endpoint.
	StatusURL string `yaml:"status_url"`

	// TimeURL is the optional time/ping endpoint.
	TimeURL string `yaml:"time_url"`

	// Maintenance configures how the status endpoint signals maintenance.
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

// MaintenanceConfig assembles a maintenance predicate for a status endpoint.
type MaintenanceConfig struct {
	// Predicate names a built-in parser: whitebit, bybit, binance,
	// bitfinex, htx or okx.
	Predicate string `yaml:"predicate"`

	// Keywords mark maintenance when found in a successful response body.
	Keywords []string `yaml:"keywords"`

	// StatusCodes mark maintenance when returned by the status endpoint.
	StatusCodes []int `yaml:"status_codes"`
}

// PolicyConfig overrides the policy for one kind.
type PolicyConfig struct {
	// Mode is "probe" or "always_available".
	Mode string `yaml:"mode"`

	// Code is the result code reported by always_available policies.
	// Default: SKIPPED_<KIND>
	Code string `yaml:"code"`
}

// CatalogConfig controls the seeded provider records.
type CatalogConfig struct {
	// DisableBuiltin skips the built-in provider catalog.
	DisableBuiltin bool `yaml:"disable_builtin"`

	// HomeVisible lists identities shown on the home page.
	HomeVisible []string `yaml:"home_visible"`

	// Providers adds records that are not part of the built-in catalog.
	Providers []ProviderConfig `yaml:"providers"`
}

// ProviderConfig is a provider record declared in configuration.
type ProviderConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// DisableReceive and DisableSend turn off the manual operating flags,
	// which are on by default.
	DisableReceive bool `yaml:"disable_receive"`
	DisableSend    bool `yaml:"disable_send"`
}

// StorageConfig selects the provider record store.
type StorageConfig struct {
	// Backend is "memory", "sqlite" or "postgres".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Postgres contains PostgreSQL-specific settings.
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/providers.db"
	Path string `yaml:"path"`

	// Driver is "sqlite" (pure Go) or "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// PostgresConfig contains configuration for the PostgreSQL store.
type PostgresConfig struct {
	// DSN is the connection string. Required for the postgres backend.
	DSN string `yaml:"dsn"`

	// MaxOpenConns caps the connection pool.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// AutoMigrate creates the providers table if missing.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// ScheduleConfig contains configuration for periodic runs.
type ScheduleConfig struct {
	// Enabled turns on scheduled runs in serve mode.
	Enabled bool `yaml:"enabled"`

	// Cron is a standard 5-field cron expression.
	// Default: "*/5 * * * *"
	Cron string `yaml:"cron"`

	// RunOnStart triggers one run immediately when serve starts.
	RunOnStart bool `yaml:"run_on_start"`

	// DryRun computes results without writing them back.
	DryRun bool `yaml:"dry_run"`
}

// ServerConfig contains the serve-mode HTTP listener settings.
type ServerConfig struct {
	// ListenAddress is the address for health, metrics and report endpoints.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// APIKeys guard POST /run. When empty the endpoint is unauthenticated.
	APIKeys []APIKeyConfig `yaml:"api_keys"`
}

// APIKeyConfig is a named key accepted by the run endpoint.
type APIKeyConfig struct {
	Name     string `yaml:"name"`
	Key      string `yaml:"key"`
	Disabled bool   `yaml:"disabled"`
}

// EventsConfig configures availability-transition events.
type EventsConfig struct {
	// Backend is "none", "log" or "kafka".
	// Default: "none"
	Backend string `yaml:"backend"`

	// Kafka contains Kafka producer settings.
	Kafka KafkaConfig `yaml:"kafka"`
}

// KafkaConfig contains Kafka producer settings.
type KafkaConfig struct {
	// Brokers is the list of bootstrap brokers ("host:port").
	Brokers []string `yaml:"brokers"`

	// Topic receives availability events.
	// Default: "provider-availability"
	Topic string `yaml:"topic"`

	// WriteTimeout bounds a single publish.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`

	// DisableRedaction turns off masking of secrets in log attributes.
	DisableRedaction bool `yaml:"disable_redaction"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint in serve mode.
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "lpmon"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem.
	// Default: "health"
	Subsystem string `yaml:"subsystem"`

	// ProbeDurationBuckets are histogram buckets in seconds.
	ProbeDurationBuckets []float64 `yaml:"probe_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled turns on span export. When false a no-op tracer is used.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of runs to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds a single export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "lpmon"
	ServiceName string `yaml:"service_name"`
}
