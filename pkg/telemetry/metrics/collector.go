package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/config"
	"swapers-hq/lpmon/pkg/probe"
	"swapers-hq/lpmon/pkg/provider"
)

// Collector owns the Prometheus registry and every lpmon metric.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	probeDuration *prometheus.HistogramVec
	available     *prometheus.GaugeVec
	results       *prometheus.CounterVec
	persistErrors *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	batchTimeouts prometheus.Counter
}

// NewCollector creates and registers all metrics. If registry is nil a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ProbeDurationBuckets) == 0 {
		cfg.ProbeDurationBuckets = config.DefaultProbeDurationBuckets
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		probeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "probe_duration_seconds",
				Help:      "Duration of individual provider probes in seconds",
				Buckets:   cfg.ProbeDurationBuckets,
			},
			[]string{"provider", "probe", "outcome"},
		),

		available: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_available",
				Help:      "Provider availability from the latest check (1=available, 0=unavailable)",
			},
			[]string{"provider", "kind"},
		),

		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "check_results_total",
				Help:      "Total number of availability checks by result code",
			},
			[]string{"provider", "code"},
		),

		persistErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "persist_errors_total",
				Help:      "Total number of failed availability write-backs",
			},
			[]string{"provider"},
		),

		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_duration_seconds",
				Help:      "Wall time of batch runs in seconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),

		batchTimeouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_timeouts_total",
				Help:      "Total number of providers cut off by the batch deadline",
			},
		),
	}

	registry.MustRegister(
		c.probeDuration,
		c.available,
		c.results,
		c.persistErrors,
		c.batchDuration,
		c.batchTimeouts,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveProbe records the duration of a single probe.
func (c *Collector) ObserveProbe(providerID string, kind probe.Kind, out probe.Outcome) {
	c.probeDuration.WithLabelValues(providerID, string(kind), out.Kind.String()).Observe(out.Elapsed.Seconds())
}

// ObserveResult records a provider's check result.
func (c *Collector) ObserveResult(rec provider.Record, res availability.Result) {
	value := 0.0
	if res.Available {
		value = 1.0
	}
	c.available.WithLabelValues(rec.ID, string(rec.Kind)).Set(value)
	c.results.WithLabelValues(rec.ID, string(res.Code)).Inc()
}

// ObservePersistError records a failed write-back.
func (c *Collector) ObservePersistError(rec provider.Record, err error) {
	c.persistErrors.WithLabelValues(rec.ID).Inc()
}

// ObserveBatch records a finished batch run.
func (c *Collector) ObserveBatch(dryRun bool, duration time.Duration, timedOut int) {
	mode := "applied"
	if dryRun {
		mode = "dry_run"
	}
	c.batchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	c.batchTimeouts.Add(float64(timedOut))
}
