package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"

	"swapers-hq/lpmon/pkg/probe"
	"swapers-hq/lpmon/pkg/provider"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "runner.concurrency").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProbe(&cfg.Probe)...)
	errs = append(errs, validateRunner(&cfg.Runner)...)
	errs = append(errs, validateRegistry(&cfg.Registry)...)
	errs = append(errs, validatePolicies(cfg.Policies)...)
	errs = append(errs, validateCatalog(&cfg.Catalog)...)
	errs = append(errs, validateStorage(&cfg.Storage)...)
	errs = append(errs, validateSchedule(&cfg.Schedule)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateEvents(&cfg.Events)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateProbe(cfg *ProbeConfig) []FieldError {
	var errs []FieldError
	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{Field: "probe.timeout", Message: "timeout must be positive"})
	}
	if cfg.MaxBodyBytes < 0 {
		errs = append(errs, FieldError{Field: "probe.max_body_bytes", Message: "max body bytes must be non-negative"})
	}
	return errs
}

func validateRunner(cfg *RunnerConfig) []FieldError {
	var errs []FieldError
	if cfg.Concurrency < 1 {
		errs = append(errs, FieldError{Field: "runner.concurrency", Message: "concurrency must be at least 1"})
	}
	if cfg.BatchDeadline <= 0 {
		errs = append(errs, FieldError{Field: "runner.batch_deadline", Message: "batch deadline must be positive"})
	}
	return errs
}

func validateRegistry(cfg *RegistryConfig) []FieldError {
	var errs []FieldError
	seen := make(map[string]bool)

	for i, ep := range cfg.Endpoints {
		prefix := fmt.Sprintf("registry.endpoints[%d]", i)
		id := provider.NormalizeID(ep.Provider)

		if id == "" {
			errs = append(errs, FieldError{Field: prefix + ".provider", Message: "provider is required"})
		} else if seen[id] {
			errs = append(errs, FieldError{Field: prefix + ".provider", Message: fmt.Sprintf("duplicate provider %q", id)})
		}
		seen[id] = true

		if ep.StatusURL == "" && ep.TimeURL == "" {
			errs = append(errs, FieldError{Field: prefix, Message: "at least one of status_url or time_url is required"})
		}
		if ep.StatusURL != "" && !isHTTPURL(ep.StatusURL) {
			errs = append(errs, FieldError{Field: prefix + ".status_url", Message: "must be an absolute http(s) URL"})
		}
		if ep.TimeURL != "" && !isHTTPURL(ep.TimeURL) {
			errs = append(errs, FieldError{Field: prefix + ".time_url", Message: "must be an absolute http(s) URL"})
		}

		m := ep.Maintenance
		if m.Predicate != "" && !slices.Contains(probe.PredicateNames(), strings.ToLower(m.Predicate)) {
			errs = append(errs, FieldError{
				Field:   prefix + ".maintenance.predicate",
				Message: fmt.Sprintf("unknown predicate %q (valid: %s)", m.Predicate, strings.Join(probe.PredicateNames(), ", ")),
			})
		}
		if ep.StatusURL == "" && (m.Predicate != "" || len(m.Keywords) > 0 || len(m.StatusCodes) > 0) {
			errs = append(errs, FieldError{Field: prefix + ".maintenance", Message: "maintenance requires status_url"})
		}
		for _, code := range m.StatusCodes {
			if code < 100 || code > 599 {
				errs = append(errs, FieldError{Field: prefix + ".maintenance.status_codes", Message: fmt.Sprintf("invalid HTTP status %d", code)})
			}
		}
	}
	return errs
}

func validatePolicies(policies map[string]PolicyConfig) []FieldError {
	var errs []FieldError
	for kind, p := range policies {
		field := "policies." + kind
		if _, err := provider.ParseKind(kind); err != nil {
			errs = append(errs, FieldError{Field: field, Message: err.Error()})
		}
		switch p.Mode {
		case "probe", "always_available":
		default:
			errs = append(errs, FieldError{Field: field + ".mode", Message: "mode must be one of: probe, always_available"})
		}
		if p.Mode == "probe" && p.Code != "" {
			errs = append(errs, FieldError{Field: field + ".code", Message: "code only applies to always_available"})
		}
	}
	return errs
}

func validateCatalog(cfg *CatalogConfig) []FieldError {
	var errs []FieldError
	seen := make(map[string]bool)
	for i, p := range cfg.Providers {
		prefix := fmt.Sprintf("catalog.providers[%d]", i)
		id := provider.NormalizeID(p.ID)
		if id == "" {
			errs = append(errs, FieldError{Field: prefix + ".id", Message: "id is required"})
		} else if seen[id] {
			errs = append(errs, FieldError{Field: prefix + ".id", Message: fmt.Sprintf("duplicate provider %q", id)})
		}
		seen[id] = true
		if _, err := provider.ParseKind(p.Kind); err != nil {
			errs = append(errs, FieldError{Field: prefix + ".kind", Message: err.Error()})
		}
	}
	return errs
}

func validateStorage(cfg *StorageConfig) []FieldError {
	var errs []FieldError
	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{Field: "storage.sqlite.path", Message: "path is required"})
		}
		if cfg.SQLite.Driver != "sqlite" && cfg.SQLite.Driver != "sqlite3" {
			errs = append(errs, FieldError{Field: "storage.sqlite.driver", Message: "driver must be one of: sqlite, sqlite3"})
		}
	case "postgres":
		if cfg.Postgres.DSN == "" {
			errs = append(errs, FieldError{Field: "storage.postgres.dsn", Message: "dsn is required for postgres backend"})
		}
	default:
		errs = append(errs, FieldError{Field: "storage.backend", Message: "backend must be one of: memory, sqlite, postgres"})
	}
	return errs
}

func validateSchedule(cfg *ScheduleConfig) []FieldError {
	if !cfg.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(cfg.Cron); err != nil {
		return []FieldError{{Field: "schedule.cron", Message: fmt.Sprintf("invalid cron expression: %v", err)}}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError
	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be non-negative"})
	}
	for i, k := range cfg.APIKeys {
		if k.Key == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("server.api_keys[%d].key", i), Message: "key is required"})
		}
	}
	return errs
}

func validateEvents(cfg *EventsConfig) []FieldError {
	var errs []FieldError
	switch cfg.Backend {
	case "none", "log":
	case "kafka":
		if len(cfg.Kafka.Brokers) == 0 {
			errs = append(errs, FieldError{Field: "events.kafka.brokers", Message: "at least one broker is required"})
		}
		if cfg.Kafka.Topic == "" {
			errs = append(errs, FieldError{Field: "events.kafka.topic", Message: "topic is required"})
		}
	default:
		errs = append(errs, FieldError{Field: "events.backend", Message: "backend must be one of: none, log, kafka"})
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be one of: %s)", cfg.Logging.Level, strings.Join(validLevels, ", ")),
		})
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Logging.Format)) {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be one of: %s)", cfg.Logging.Format, strings.Join(validFormats, ", ")),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "path must start with /"})
	}

	if cfg.Tracing.Enabled {
		validSamplers := []string{"always", "never", "ratio"}
		if !slices.Contains(validSamplers, cfg.Tracing.Sampler) {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("invalid sampler %q (must be one of: %s)", cfg.Tracing.Sampler, strings.Join(validSamplers, ", ")),
			})
		}
		if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
			errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "sample ratio must be between 0.0 and 1.0"})
		}
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "endpoint is required when tracing is enabled"})
		}
	}
	return errs
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
