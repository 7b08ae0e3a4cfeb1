package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero timeout", func(c *Config) { c.Probe.Timeout = 0 }, "probe.timeout"},
		{"zero concurrency", func(c *Config) { c.Runner.Concurrency = 0 }, "runner.concurrency"},
		{"negative deadline", func(c *Config) { c.Runner.BatchDeadline = -1 }, "runner.batch_deadline"},
		{
			"endpoint without urls",
			func(c *Config) { c.Registry.Endpoints = []EndpointConfig{{Provider: "X"}} },
			"registry.endpoints[0]",
		},
		{
			"endpoint bad url",
			func(c *Config) { c.Registry.Endpoints = []EndpointConfig{{Provider: "X", TimeURL: "not a url"}} },
			"registry.endpoints[0].time_url",
		},
		{
			"duplicate endpoint",
			func(c *Config) {
				c.Registry.Endpoints = []EndpointConfig{
					{Provider: "X", TimeURL: "https://x.example/t"},
					{Provider: "x", TimeURL: "https://x.example/t2"},
				}
			},
			"registry.endpoints[1].provider",
		},
		{
			"unknown predicate",
			func(c *Config) {
				c.Registry.Endpoints = []EndpointConfig{{
					Provider: "X", StatusURL: "https://x.example/s",
					Maintenance: MaintenanceConfig{Predicate: "kraken"},
				}}
			},
			"registry.endpoints[0].maintenance.predicate",
		},
		{
			"maintenance without status",
			func(c *Config) {
				c.Registry.Endpoints = []EndpointConfig{{
					Provider: "X", TimeURL: "https://x.example/t",
					Maintenance: MaintenanceConfig{Keywords: []string{"down"}},
				}}
			},
			"registry.endpoints[0].maintenance",
		},
		{"unknown policy kind", func(c *Config) { c.Policies = map[string]PolicyConfig{"FOREX": {Mode: "probe"}} }, "policies.FOREX"},
		{"bad policy mode", func(c *Config) { c.Policies = map[string]PolicyConfig{"CEX": {Mode: "sometimes"}} }, "policies.CEX.mode"},
		{"catalog bad kind", func(c *Config) { c.Catalog.Providers = []ProviderConfig{{ID: "X", Kind: "FOREX"}} }, "catalog.providers[0].kind"},
		{"sqlite bad driver", func(c *Config) { c.Storage.Backend = "sqlite"; c.Storage.SQLite.Driver = "duckdb" }, "storage.sqlite.driver"},
		{"bad cron", func(c *Config) { c.Schedule.Enabled = true; c.Schedule.Cron = "every minute" }, "schedule.cron"},
		{"kafka without brokers", func(c *Config) { c.Events.Backend = "kafka" }, "events.kafka.brokers"},
		{"bad events backend", func(c *Config) { c.Events.Backend = "nats" }, "events.backend"},
		{"empty api key", func(c *Config) { c.Server.APIKeys = []APIKeyConfig{{Name: "ops"}} }, "server.api_keys[0].key"},
		{"bad log level", func(c *Config) { c.Telemetry.Logging.Level = "verbose" }, "telemetry.logging.level"},
		{"bad log format", func(c *Config) { c.Telemetry.Logging.Format = "console" }, "telemetry.logging.format"},
		{
			"bad tracing sampler",
			func(c *Config) { c.Telemetry.Tracing.Enabled = true; c.Telemetry.Tracing.Sampler = "sometimes" },
			"telemetry.tracing.sampler",
		},
		{
			"tracing ratio out of range",
			func(c *Config) { c.Telemetry.Tracing.Enabled = true; c.Telemetry.Tracing.SampleRatio = 1.5 },
			"telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidationError_Format(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if single.Error() != "configuration validation failed: a: bad" {
		t.Errorf("unexpected message: %q", single.Error())
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !strings.Contains(multi.Error(), "2 errors") {
		t.Errorf("expected error count in message: %q", multi.Error())
	}
}
