package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"swapers-hq/lpmon/pkg/cli"
	"swapers-hq/lpmon/pkg/runner"
	"swapers-hq/lpmon/pkg/telemetry/health"
	"swapers-hq/lpmon/pkg/telemetry/tracing"
)

// RunFunc executes a batch on demand.
type RunFunc func(ctx context.Context, opts runner.Options) (*runner.Report, error)

// Latest holds the most recent report.
type Latest struct {
	report atomic.Pointer[runner.Report]
}

// Set replaces the stored report. nil is ignored.
func (l *Latest) Set(r *runner.Report) {
	if r != nil {
		l.report.Store(r)
	}
}

// Get returns the stored report or nil.
func (l *Latest) Get() *runner.Report {
	return l.report.Load()
}

// Routes describes what the server exposes. Nil fields disable their route.
type Routes struct {
	Health      *health.Checker
	Version     http.Handler
	Metrics     http.Handler
	MetricsPath string
	Latest      *Latest
	Run         RunFunc

	// Auth wraps the run endpoint when set.
	Auth func(http.Handler) http.Handler
}

// Handler builds the mux and wraps it in middleware.
func (rt Routes) Handler() http.Handler {
	mux := http.NewServeMux()

	if rt.Health != nil {
		mux.Handle("GET /healthz", rt.Health.LivenessHandler())
		mux.Handle("GET /readyz", rt.Health.ReadinessHandler())
	}
	if rt.Version != nil {
		mux.Handle("GET /version", rt.Version)
	}
	if rt.Metrics != nil {
		path := rt.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, rt.Metrics)
	}
	if rt.Latest != nil {
		mux.HandleFunc("GET /report", rt.serveReport)
	}
	if rt.Run != nil {
		var run http.Handler = http.HandlerFunc(rt.serveRun)
		if rt.Auth != nil {
			run = rt.Auth(run)
		}
		mux.Handle("POST /run", run)
	}

	var h http.Handler = mux
	h = loggingMiddleware(h)
	h = tracing.HTTPMiddleware(h)
	h = requestIDMiddleware(h)
	h = recoveryMiddleware(h)
	return h
}

func (rt Routes) serveReport(w http.ResponseWriter, r *http.Request) {
	report := rt.Latest.Get()
	if report == nil {
		writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	writeReport(w, http.StatusOK, report)
}

func (rt Routes) serveRun(w http.ResponseWriter, r *http.Request) {
	var opts runner.Options
	if v := r.URL.Query().Get("dry_run"); v != "" {
		dry, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dry_run value")
			return
		}
		opts.DryRun = dry
	}

	report, err := rt.Run(r.Context(), opts)
	if rt.Latest != nil {
		rt.Latest.Set(report)
	}
	if err != nil && report == nil {
		slog.ErrorContext(r.Context(), "on-demand run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusGatewayTimeout
	}
	writeReport(w, status, report)
}

func writeReport(w http.ResponseWriter, status int, report *runner.Report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = (&cli.JSONReportWriter{}).WriteReport(w, report)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
