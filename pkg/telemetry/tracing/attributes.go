package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/provider"
)

// Span attribute keys.
const (
	AttrRunID     = "lpmon.run_id"
	AttrDryRun    = "lpmon.dry_run"
	AttrProviders = "lpmon.providers"

	AttrProvider = "lpmon.provider"
	AttrKind     = "lpmon.provider.kind"

	AttrAvailable = "lpmon.available"
	AttrCode      = "lpmon.code"
	AttrPath      = "lpmon.path"
	AttrElapsedMS = "lpmon.elapsed_ms"
	AttrChanged   = "lpmon.changed"

	AttrErrorMessage = "error.message"
)

// RunAttributes describes a batch run.
func RunAttributes(runID string, providers int, dryRun bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrProviders, providers),
		attribute.Bool(AttrDryRun, dryRun),
	}
}

// ProviderAttributes identifies the provider a check span belongs to.
func ProviderAttributes(rec provider.Record) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrProvider, rec.ID),
		attribute.String(AttrKind, string(rec.Kind)),
	}
}

// SetResultAttributes records a verdict on span.
func SetResultAttributes(span trace.Span, rec provider.Record, res availability.Result) {
	span.SetAttributes(
		attribute.Bool(AttrAvailable, res.Available),
		attribute.String(AttrCode, string(res.Code)),
		attribute.String(AttrPath, string(res.Path)),
		attribute.Int64(AttrElapsedMS, res.ElapsedMS),
		attribute.Bool(AttrChanged, res.Available != rec.IsAvailable),
	)
}
