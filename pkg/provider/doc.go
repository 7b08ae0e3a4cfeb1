// Package provider defines the liquidity-provider data model shared by the
// availability engine, the batch runner and the storage backends.
//
// # Records
//
// A Record is the externally owned view of one provider: its identity, its
// Kind, the manual operating flags and the last known availability. Records
// are values; the engine never mutates them.
//
// # Effective Modes
//
// ComputeModes combines the latest availability with the manual flags:
//
//	modes := provider.ComputeModes(rec.IsAvailable, rec.CanReceive, rec.CanSend)
//	if modes.CanReceive {
//		// accept deposits
//	}
//
// There are no kind-specific exceptions to the formula.
//
// # Catalog
//
// Catalog lists the providers the platform knows about, with their display
// names and kinds. It is used to seed stores and to normalise CLI filters.
package provider
