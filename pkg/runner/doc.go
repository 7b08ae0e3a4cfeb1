// Package runner executes availability checks over a batch of providers.
//
// A run lists provider records from a storage.Store, narrows them with a
// provider.Filter and checks each one through an availability.Engine on a
// bounded pool of goroutines. In persist mode every freshly computed
// availability is written back with a single SetAvailability call; in
// dry-run mode the store is only read.
//
// Failures are scoped per provider. A persistence error or a configuration
// error is recorded on that provider's Entry and the rest of the batch
// continues. The only batch-level failure is the soft deadline: providers
// still pending when it expires are reported with code DEADLINE_EXCEEDED and
// Run returns the partial report together with ErrDeadlineExceeded.
package runner
