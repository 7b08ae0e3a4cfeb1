// Package tracing provides OpenTelemetry tracing for batch runs.
//
// # Overview
//
// Every batch run opens a root span and every provider check a child span
// carrying the verdict (availability, code, path, elapsed time). Spans are
// exported to an OTLP gRPC collector. When tracing is disabled a no-op
// tracer is returned so callers never need to nil-check.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.25
//	    endpoint: otel-collector:4317
//	    insecure: true
//
// # Propagation
//
// The HTTP server extracts W3C Trace Context headers so that a run triggered
// through POST /run joins the caller's trace.
//
// # Usage
//
//	tracer, err := tracing.New(cfg.Telemetry.Tracing)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "lpmon.run")
//	defer span.End()
package tracing
