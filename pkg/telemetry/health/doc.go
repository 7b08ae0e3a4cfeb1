// Package health serves the liveness, readiness and version endpoints of
// lpmon serve.
//
// Liveness (/healthz) only reports that the process is up. Readiness
// (/readyz) runs every registered Check concurrently, each bounded by the
// checker's timeout, and answers 503 when any of them fails:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("store", health.StoreCheck(store))
//	checker.Register("last_run", health.LastRunCheck(sched.Last, 15*time.Minute))
//	mux.Handle("/readyz", checker.ReadinessHandler())
package health
