package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/events"
	"swapers-hq/lpmon/pkg/provider"
	"swapers-hq/lpmon/pkg/storage"
	"swapers-hq/lpmon/pkg/telemetry/logging"
	"swapers-hq/lpmon/pkg/telemetry/tracing"
)

// ErrDeadlineExceeded is returned with a partial report when the batch
// deadline expires before every provider is checked.
var ErrDeadlineExceeded = errors.New("batch deadline exceeded")

const (
	// DefaultConcurrency is the pool size used when none is configured.
	DefaultConcurrency = 10

	// DefaultDeadline is the soft batch deadline used when none is configured.
	DefaultDeadline = 30 * time.Second
)

// Checker computes availability for one record. *availability.Engine
// implements it.
type Checker interface {
	Check(ctx context.Context, rec provider.Record) (availability.Result, error)
}

// Observer is notified about per-provider results and whole batches.
type Observer interface {
	ObserveResult(rec provider.Record, res availability.Result)
	ObservePersistError(rec provider.Record, err error)
	ObserveBatch(dryRun bool, duration time.Duration, timedOut int)
}

// Options selects what a single run does.
type Options struct {
	Filter provider.Filter
	DryRun bool
}

// Runner executes batch runs. It is safe for concurrent use, though runs
// sharing a store race on writes (last write wins).
type Runner struct {
	checker     Checker
	store       storage.Store
	concurrency int
	deadline    time.Duration
	observer    Observer
	publisher   events.Publisher
	tracer      trace.Tracer
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the worker pool size. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithDeadline sets the soft batch deadline. Zero disables it.
func WithDeadline(d time.Duration) Option {
	return func(r *Runner) { r.deadline = d }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithPublisher sets where availability transitions are published.
func WithPublisher(p events.Publisher) Option {
	return func(r *Runner) {
		if p != nil {
			r.publisher = p
		}
	}
}

// WithTracer sets the tracer used for run and check spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Runner.
func New(checker Checker, store storage.Store, opts ...Option) *Runner {
	r := &Runner{
		checker:     checker,
		store:       store,
		concurrency: DefaultConcurrency,
		deadline:    DefaultDeadline,
		publisher:   events.Nop{},
		tracer:      noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
		logger:      slog.Default().With("component", "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks every record selected by opts.Filter.
//
// The returned report is ordered by provider identity and always covers the
// full selection. The error is non-nil only when the store cannot be listed,
// when ctx ends, or when the batch deadline expires (ErrDeadlineExceeded);
// in the last two cases the partial report is returned as well.
func (r *Runner) Run(ctx context.Context, opts Options) (report *Report, err error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	ctx, span := r.tracer.Start(ctx, "lpmon.run")
	defer func() {
		tracing.SetError(span, err)
		span.End()
	}()

	records, err := r.store.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	selected := opts.Filter.Apply(records)
	span.SetAttributes(tracing.RunAttributes(runID, len(selected), opts.DryRun)...)

	report = &Report{
		RunID:   runID,
		DryRun:  opts.DryRun,
		Started: time.Now(),
		Entries: make([]Entry, len(selected)),
	}

	r.logger.InfoContext(ctx, "batch started",
		"providers", len(selected),
		"dry_run", opts.DryRun,
		"concurrency", r.concurrency,
	)

	batchCtx, cancel := r.batchContext(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, rec := range selected {
		if batchCtx.Err() != nil {
			report.Entries[i] = interrupted(rec, context.Cause(batchCtx))
			continue
		}
		g.Go(func() error {
			report.Entries[i] = r.checkOne(ctx, batchCtx, rec, opts.DryRun)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(report.Started)
	sum := report.Summary()

	if r.observer != nil {
		r.observer.ObserveBatch(opts.DryRun, report.Duration, sum.TimedOut)
	}

	if !opts.DryRun {
		r.publish(ctx, report)
	}

	r.logger.InfoContext(ctx, "batch finished",
		"checked", sum.Checked,
		"ok", sum.OK,
		"changed", sum.Changed,
		"timed_out", sum.TimedOut,
		"errors", sum.Errors,
		"persist_errors", sum.PersistErrors,
		"duration", report.Duration,
	)

	switch {
	case ctx.Err() != nil:
		return report, fmt.Errorf("batch interrupted: %w", context.Cause(ctx))
	case sum.TimedOut > 0:
		return report, ErrDeadlineExceeded
	}
	return report, nil
}

func (r *Runner) batchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.deadline <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, r.deadline, ErrDeadlineExceeded)
}

// checkOne runs the engine for rec under batchCtx and persists under ctx, so
// a result that completed just before the deadline is still written.
func (r *Runner) checkOne(ctx, batchCtx context.Context, rec provider.Record, dryRun bool) Entry {
	if batchCtx.Err() != nil {
		return interrupted(rec, context.Cause(batchCtx))
	}

	ctx, span := r.tracer.Start(ctx, "lpmon.check", trace.WithAttributes(tracing.ProviderAttributes(rec)...))
	defer span.End()

	res, err := r.checker.Check(trace.ContextWithSpan(batchCtx, span), rec)
	if err != nil {
		if batchCtx.Err() != nil {
			entry := interrupted(rec, context.Cause(batchCtx))
			span.SetAttributes(attribute.String(tracing.AttrCode, string(entry.Result.Code)))
			return entry
		}
		tracing.SetError(span, err)
		r.logger.ErrorContext(ctx, "provider check failed", "provider", rec.ID, "kind", string(rec.Kind), "error", err)
		return Entry{Record: rec, Err: err}
	}
	tracing.SetResultAttributes(span, rec, res)

	entry := Entry{
		Record:  rec,
		Result:  res,
		Modes:   provider.ComputeModes(res.Available, rec.CanReceive, rec.CanSend),
		Changed: res.Available != rec.IsAvailable,
	}
	if r.observer != nil {
		r.observer.ObserveResult(rec, res)
	}

	r.logger.DebugContext(ctx, "provider checked",
		"provider", rec.ID,
		"available", res.Available,
		"code", string(res.Code),
		"path", string(res.Path),
		"elapsed_ms", res.ElapsedMS,
	)

	if dryRun {
		return entry
	}

	if err := r.store.SetAvailability(ctx, rec.ID, res.Available); err != nil {
		entry.PersistErr = err
		span.RecordError(err)
		if r.observer != nil {
			r.observer.ObservePersistError(rec, err)
		}
		r.logger.WarnContext(ctx, "failed to persist availability", "provider", rec.ID, "error", err)
	}
	return entry
}

// publish emits transitions for entries that changed and were persisted.
func (r *Runner) publish(ctx context.Context, report *Report) {
	var batch []events.Event
	for _, e := range report.Entries {
		if e.Changed && e.PersistErr == nil {
			batch = append(batch, events.NewEvent(report.RunID, e.Record, e.Result))
		}
	}
	if len(batch) == 0 {
		return
	}
	if err := r.publisher.Publish(ctx, batch...); err != nil {
		r.logger.WarnContext(ctx, "failed to publish availability events", "events", len(batch), "error", err)
	}
}

// interrupted builds the entry for a check that did not complete. cause
// decides whether it timed out on the batch deadline or was canceled.
func interrupted(rec provider.Record, cause error) Entry {
	entry := Entry{
		Record: rec,
		Result: availability.Result{
			Provider:  rec.ID,
			Path:      availability.PathSkipped,
			CheckedAt: time.Now(),
		},
		Modes: provider.ComputeModes(false, rec.CanReceive, rec.CanSend),
	}
	if errors.Is(cause, ErrDeadlineExceeded) {
		entry.Result.Code = availability.CodeDeadlineExceeded
		entry.Result.Detail = "batch deadline exceeded before check completed"
		entry.TimedOut = true
		return entry
	}
	entry.Result.Code = availability.CodeCanceled
	entry.Result.Detail = fmt.Sprintf("check canceled: %v", cause)
	entry.Canceled = true
	return entry
}
