// Package metrics exposes Prometheus metrics for provider health checks.
//
// Metrics (namespace and subsystem configurable, default lpmon_health_):
//   - probe_duration_seconds{provider,probe,outcome}: probe latency histogram
//   - provider_available{provider,kind}: 1 when the provider is available
//   - check_results_total{provider,code}: results by code
//   - persist_errors_total{provider}: failed availability writes
//   - batch_duration_seconds{mode}: wall time of batch runs
//   - batch_timeouts_total: providers cut off by the batch deadline
//
// The Collector satisfies the engine's probe observer and the runner's
// observer, so wiring it is a matter of passing it to both:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	engine := availability.NewEngine(reg, prober, availability.WithObserver(collector))
//	r := runner.New(engine, store, runner.WithObserver(collector))
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
package metrics
