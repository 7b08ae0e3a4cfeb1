// Package telemetry groups the observability packages used by lpmon.
//
// # Components
//
//   - logging: structured slog output with secret redaction and run IDs
//   - metrics: Prometheus probe, result and batch metrics
//   - tracing: OpenTelemetry spans for runs and provider checks
//   - health: liveness and readiness checks for serve mode
//
// Each package is configured from the telemetry section:
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	  tracing:
//	    enabled: false
package telemetry
