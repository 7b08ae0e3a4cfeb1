// Package logging builds the process-wide slog logger.
//
// New returns a *slog.Logger writing JSON or text records at the configured
// level. Unless redaction is disabled, every string attribute passes through
// a Redactor that masks credentials: bearer tokens, passwords in DSNs, and
// secrets carried in URL userinfo or query parameters. Probe URLs and storage
// DSNs are logged routinely, so this is on by default.
//
// Context helpers attach a batch run ID to a context; records logged with the
// *Context slog methods pick it up automatically as "run_id".
//
//	logger, err := logging.New(cfg.Telemetry.Logging, os.Stderr)
//	slog.SetDefault(logger)
//	ctx = logging.WithRunID(ctx, runID)
//	slog.InfoContext(ctx, "batch started")
package logging
