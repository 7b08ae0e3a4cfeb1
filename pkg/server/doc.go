// Package server is the HTTP surface of lpmon serve.
//
// Routes:
//
//	GET  /healthz   liveness
//	GET  /readyz    readiness (store, last scheduled run)
//	GET  /version   build information
//	GET  /metrics   Prometheus exposition (path configurable)
//	GET  /report    last batch report as JSON
//	POST /run       run a batch now; ?dry_run=true skips persistence
//
// Every request passes through request-ID, logging and panic recovery
// middleware.
package server
