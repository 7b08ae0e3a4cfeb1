// Package probe contains the endpoint registry and the HTTP prober used to
// infer whether a liquidity provider is reachable.
//
// # Registry
//
// A Registry maps a provider identity to at most one status endpoint and at
// most one time endpoint. Registries are immutable: Extend returns a new
// instance and refuses to overwrite an identity that is already present.
// Absence of an identity is a valid state and means "no probes".
//
//	reg := probe.DefaultRegistry()
//	reg, err := reg.Extend(probe.Entry{
//		Provider: "NEWEX",
//		Time:     probe.TimeEndpoint("https://api.newex.io/time"),
//	})
//
// # Prober
//
// HTTPProber issues exactly one GET per call with a fixed timeout and
// classifies the result into an Outcome. Failures are data: Probe never
// returns an error.
//
//	Success          200
//	ClientRejected   401, 403
//	RateLimited      429
//	Failure          5xx, timeout, connection error
//	OtherStatus      anything else
//
// # Maintenance
//
// Status endpoints carry a MaintenancePredicate that turns a status probe
// outcome into a Verdict. Providers encode planned downtime differently, so
// the predicates are provider specific; see WhiteBIT, Bybit, Binance and
// friends.
package probe
