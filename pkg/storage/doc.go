// Package storage persists liquidity-provider records and their latest
// availability.
//
// Three backends implement Store:
//
//   - MemoryStore: in-process map, used in tests and dry runs.
//   - SQLiteStore: a single-file database. Driver "sqlite" (modernc.org/sqlite,
//     pure Go) is the default; "sqlite3" selects github.com/mattn/go-sqlite3.
//   - PostgresStore: gorm over gorm.io/driver/postgres for shared deployments.
//
// SetAvailability is the only write the batch runner performs. It is a
// single idempotent update per provider; concurrent writers are last-write-wins.
package storage
