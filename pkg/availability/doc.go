// Package availability decides whether a liquidity provider is available.
//
// The Engine looks up the Policy for a provider's kind. AlwaysAvailable
// policies answer immediately with a skip code; the ProbeChain policy runs
// the provider's registered probes:
//
//  1. The status endpoint, if any. A maintenance verdict is final:
//     available=false, MAINTENANCE, path "status", and the time endpoint is
//     not called. Any other verdict is inconclusive.
//  2. The time endpoint, if any. Its outcome maps to OK, AUTH_ERROR,
//     RATE_LIMIT, NETWORK_DOWN or UNKNOWN.
//  3. No endpoints at all: available=true, SKIPPED_NO_PROBE.
//
// Network failures never surface as errors. Check only fails for a kind with
// no policy (ConfigurationError) or when the caller's context ends mid-probe.
package availability
