// lpmon probes liquidity providers and maintains their availability flag.
//
// Each provider kind maps to an availability policy. Exchanges are probed
// through their public status and time endpoints; payment systems, wallets,
// nodes, banks and cash desks are reported available without probing. The
// result is written back to the provider store and drives the effective
// receive/send modes.
//
// Usage:
//
//	# Check every provider and persist the results
//	lpmon check
//
//	# Check two exchanges without writing anything, one line per provider
//	lpmon check --provider BYBIT --provider KUCOIN --dry-run --verbose
//
//	# Run on a cron schedule and serve health, metrics and the last report
//	lpmon serve --config /etc/lpmon/config.yaml
//
//	# Show stored providers
//	lpmon providers list --kind CEX
package main

import "os"

func main() {
	os.Exit(Execute(os.Args[1:]))
}
