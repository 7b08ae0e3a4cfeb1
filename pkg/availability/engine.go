package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swapers-hq/lpmon/pkg/probe"
	"swapers-hq/lpmon/pkg/provider"
)

// ProbeObserver is notified of every probe the engine executes.
type ProbeObserver interface {
	ObserveProbe(providerID string, kind probe.Kind, out probe.Outcome)
}

// Engine maps provider records to availability results. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	registry *probe.Registry
	prober   probe.Prober
	policies PolicyTable
	observer ProbeObserver
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicies replaces the default kind → policy table.
func WithPolicies(t PolicyTable) Option {
	return func(e *Engine) { e.policies = t }
}

// WithObserver registers a probe observer.
func WithObserver(o ProbeObserver) Option {
	return func(e *Engine) { e.observer = o }
}

// WithClock overrides the time source used for CheckedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over an explicitly constructed registry.
func NewEngine(registry *probe.Registry, prober probe.Prober, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		prober:   prober,
		policies: DefaultPolicies(),
		now:      time.Now,
		logger:   slog.Default().With("component", "availability"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine was built with.
func (e *Engine) Registry() *probe.Registry {
	return e.registry
}

// Check computes a fresh Result for rec.
//
// The only errors are *ConfigurationError, for a kind without a policy, and
// the context's error when ctx ends while a probe is in flight.
func (e *Engine) Check(ctx context.Context, rec provider.Record) (Result, error) {
	policy, ok := e.policies[rec.Kind]
	if !ok {
		return Result{}, &ConfigurationError{Provider: rec.ID, Kind: rec.Kind}
	}

	switch p := policy.(type) {
	case AlwaysAvailable:
		return e.result(rec, true, p.Code, PathSkipped, 0, ""), nil
	case ProbeChain:
		return e.runChain(ctx, rec)
	default:
		return Result{}, &ConfigurationError{Provider: rec.ID, Kind: rec.Kind}
	}
}

func (e *Engine) runChain(ctx context.Context, rec provider.Record) (Result, error) {
	eps := e.registry.Lookup(rec.ID)
	if eps.Empty() {
		return e.result(rec, true, CodeSkippedNoProbe, PathSkipped, 0, "no probe endpoints registered"), nil
	}

	var elapsed time.Duration
	verdict := probe.VerdictInconclusive
	statusDetail := ""

	if eps.Status != nil {
		out, err := e.probe(ctx, rec.ID, eps.Status)
		if err != nil {
			return Result{}, err
		}
		elapsed += out.Elapsed
		verdict = eps.Status.Verdict(out)
		statusDetail = "status: " + out.Detail()

		if verdict == probe.VerdictMaintenance {
			e.logger.Info("provider reports maintenance", "provider", rec.ID, "detail", out.Detail())
			return e.result(rec, false, CodeMaintenance, PathStatus, elapsed, statusDetail), nil
		}
	}

	if eps.Time == nil {
		code := CodeSkippedNoProbe
		if verdict == probe.VerdictOperational {
			code = CodeOK
		}
		return e.result(rec, true, code, PathStatus, elapsed, statusDetail), nil
	}

	out, err := e.probe(ctx, rec.ID, eps.Time)
	if err != nil {
		return Result{}, err
	}
	elapsed += out.Elapsed

	available, code := timeVerdict(out.Kind)
	path := PathTime
	detail := "time: " + out.Detail()
	if eps.Status != nil {
		path = PathStatusTime
		detail = statusDetail + "; " + detail
	}
	return e.result(rec, available, code, path, elapsed, detail), nil
}

func (e *Engine) probe(ctx context.Context, id string, ep *probe.Endpoint) (probe.Outcome, error) {
	out := e.prober.Probe(ctx, *ep)
	if out.Canceled {
		return out, fmt.Errorf("probe %s for %s interrupted: %w", ep.Kind, id, context.Cause(ctx))
	}
	if e.observer != nil {
		e.observer.ObserveProbe(id, ep.Kind, out)
	}
	return out, nil
}

// timeVerdict maps a time probe outcome to availability.
func timeVerdict(kind probe.OutcomeKind) (bool, Code) {
	switch kind {
	case probe.OutcomeSuccess:
		return true, CodeOK
	case probe.OutcomeClientRejected:
		return false, CodeAuthError
	case probe.OutcomeRateLimited:
		return false, CodeRateLimit
	case probe.OutcomeFailure:
		return false, CodeNetworkDown
	default:
		return false, CodeUnknown
	}
}

func (e *Engine) result(rec provider.Record, available bool, code Code, path Path, elapsed time.Duration, detail string) Result {
	if path == PathSkipped {
		elapsed = 0
	}
	return Result{
		Provider:  rec.ID,
		Available: available,
		Code:      code,
		Path:      path,
		ElapsedMS: elapsed.Milliseconds(),
		Detail:    truncateDetail(detail),
		CheckedAt: e.now(),
	}
}
