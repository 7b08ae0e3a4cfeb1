package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/config"
	"swapers-hq/lpmon/pkg/events"
	"swapers-hq/lpmon/pkg/runner"
	"swapers-hq/lpmon/pkg/storage"
	"swapers-hq/lpmon/pkg/telemetry/metrics"
	"swapers-hq/lpmon/pkg/telemetry/tracing"
)

// App owns the long-lived components of a process.
//
// The store, publisher, metrics collector and tracer live for the whole
// process. The engine and runner are rebuilt by Reload.
type App struct {
	store     storage.Store
	ownsStore bool
	publisher events.Publisher
	metrics   *metrics.Collector
	tracer    *tracing.Tracer

	runner atomic.Pointer[runner.Runner]
	config atomic.Pointer[config.Config]

	logger *slog.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	store     storage.Store
	publisher events.Publisher
	registry  *prometheus.Registry
	tracer    *tracing.Tracer
	version   string
	noSeed    bool
}

// WithStore uses s instead of opening the configured backend. The caller
// keeps ownership of s.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

// WithPublisher uses p instead of the configured events backend.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithMetricsRegistry registers metrics on r instead of a fresh registry.
func WithMetricsRegistry(r *prometheus.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithTracer uses t instead of building one from the tracing configuration.
func WithTracer(t *tracing.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithVersion sets the version reported in trace resources.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// WithoutSeed skips seeding the catalog into the store.
func WithoutSeed() Option {
	return func(o *options) { o.noSeed = true }
}

// New builds an App from cfg. The catalog is seeded into the store unless
// WithoutSeed is given; existing records are left untouched.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		store:     o.store,
		publisher: o.publisher,
		tracer:    o.tracer,
		logger:    slog.Default().With("component", "app"),
	}

	if a.tracer == nil {
		tracer, err := tracing.New(cfg.Telemetry.Tracing, tracing.WithServiceVersion(o.version))
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		a.tracer = tracer
	}

	if cfg.Telemetry.Metrics.Enabled {
		mcfg := cfg.Telemetry.Metrics
		a.metrics = metrics.NewCollector(&mcfg, o.registry)
	}

	if a.store == nil {
		store, err := storage.Open(cfg.Storage)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.store = store
		a.ownsStore = true
	}

	if a.publisher == nil {
		pub, err := events.Open(cfg.Events)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open events publisher: %w", err)
		}
		a.publisher = pub
	}

	if !o.noSeed {
		if _, err := a.Seed(ctx, cfg); err != nil {
			a.Close()
			return nil, err
		}
	}

	if err := a.Reload(cfg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Seed inserts catalog records missing from the store and returns how many
// were created.
func (a *App) Seed(ctx context.Context, cfg *config.Config) (int, error) {
	records, err := BuildCatalog(cfg.Catalog)
	if err != nil {
		return 0, err
	}
	created, err := storage.Seed(ctx, a.store, records)
	if err != nil {
		return created, fmt.Errorf("failed to seed provider catalog: %w", err)
	}
	a.logger.Info("provider catalog seeded", "records", len(records), "created", created, "backend", cfg.Storage.Backend)
	return created, nil
}

// Reload rebuilds the engine and runner from cfg. On error the previous
// runner stays in place.
func (a *App) Reload(cfg *config.Config) error {
	var (
		probeObserver availability.ProbeObserver
		runObserver   runner.Observer
	)
	if a.metrics != nil {
		probeObserver = a.metrics
		runObserver = a.metrics
	}

	engine, err := BuildEngine(cfg, probeObserver)
	if err != nil {
		return err
	}

	ropts := append(runnerOptions(cfg.Runner),
		runner.WithPublisher(a.publisher),
		runner.WithTracer(a.tracer.Tracer()),
	)
	if runObserver != nil {
		ropts = append(ropts, runner.WithObserver(runObserver))
	}

	a.runner.Store(runner.New(engine, a.store, ropts...))
	a.config.Store(cfg)
	a.logger.Info("engine configured",
		"probe_providers", engine.Registry().Len(),
		"concurrency", cfg.Runner.Concurrency,
		"batch_deadline", cfg.Runner.BatchDeadline,
	)
	return nil
}

// Run executes one batch with the current runner.
func (a *App) Run(ctx context.Context, opts runner.Options) (*runner.Report, error) {
	return a.runner.Load().Run(ctx, opts)
}

// Config returns the configuration of the last successful Reload.
func (a *App) Config() *config.Config {
	return a.config.Load()
}

// Store returns the provider store.
func (a *App) Store() storage.Store {
	return a.store
}

// Metrics returns the collector, or nil when metrics are disabled.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// Close flushes the tracer, releases the publisher and, when opened by New,
// the store.
func (a *App) Close() error {
	var errs []error
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
		}
		cancel()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if err := a.closeStore(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) closeStore() error {
	if !a.ownsStore || a.store == nil {
		return nil
	}
	return a.store.Close()
}
