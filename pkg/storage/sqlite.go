package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"

	"swapers-hq/lpmon/pkg/provider"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS providers (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	kind         TEXT NOT NULL,
	can_receive  INTEGER NOT NULL,
	can_send     INTEGER NOT NULL,
	home_visible INTEGER NOT NULL,
	is_available INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_providers_kind ON providers(kind);
`

// SQLiteConfig configures SQLiteStore.
type SQLiteConfig struct {
	// Path is the database file.
	Path string

	// Driver is "sqlite" (modernc.org/sqlite) or "sqlite3" (mattn/go-sqlite3).
	// Default: "sqlite"
	Driver string

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger

	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
	ensureStmt *sql.Stmt
	setStmt    *sql.Stmt
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("db path cannot be empty"))
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Driver != "sqlite" && cfg.Driver != "sqlite3" {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("unsupported driver %q", cfg.Driver))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// SQLite has a single writer; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: slog.Default().With("component", "storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("SQLite provider store initialized", "path", cfg.Path, "driver", cfg.Driver)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return NewStorageError("sqlite", "enable_wal", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	var err error
	if s.getStmt, err = s.db.Prepare(`
		SELECT id, name, kind, can_receive, can_send, home_visible, is_available
		FROM providers WHERE id = ?`); err != nil {
		return NewStorageError("sqlite", "prepare", err)
	}
	if s.putStmt, err = s.db.Prepare(`
		INSERT INTO providers (id, name, kind, can_receive, can_send, home_visible, is_available, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			can_receive = excluded.can_receive,
			can_send = excluded.can_send,
			home_visible = excluded.home_visible,
			is_available = excluded.is_available,
			updated_at = excluded.updated_at`); err != nil {
		return NewStorageError("sqlite", "prepare", err)
	}
	if s.ensureStmt, err = s.db.Prepare(`
		INSERT INTO providers (id, name, kind, can_receive, can_send, home_visible, is_available, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return NewStorageError("sqlite", "prepare", err)
	}
	if s.setStmt, err = s.db.Prepare(`
		UPDATE providers SET is_available = ?, updated_at = ? WHERE id = ?`); err != nil {
		return NewStorageError("sqlite", "prepare", err)
	}
	return nil
}

func (s *SQLiteStore) ListProviders(ctx context.Context) ([]provider.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, can_receive, can_send, home_visible, is_available
		FROM providers ORDER BY id`)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var out []provider.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	return out, nil
}

func (s *SQLiteStore) GetProvider(ctx context.Context, id string) (provider.Record, error) {
	rec, err := scanRecord(s.getStmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return provider.Record{}, ErrNotFound
	}
	if err != nil {
		return provider.Record{}, NewStorageError("sqlite", "get", err)
	}
	return rec, nil
}

func (s *SQLiteStore) PutProvider(ctx context.Context, rec provider.Record) error {
	if _, err := s.putStmt.ExecContext(ctx, recordArgs(rec)...); err != nil {
		return NewStorageError("sqlite", "put", err)
	}
	return nil
}

func (s *SQLiteStore) EnsureProvider(ctx context.Context, rec provider.Record) (bool, error) {
	res, err := s.ensureStmt.ExecContext(ctx, recordArgs(rec)...)
	if err != nil {
		return false, NewStorageError("sqlite", "ensure", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, NewStorageError("sqlite", "ensure", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := s.setStmt.ExecContext(ctx, available, time.Now().Unix(), id)
	if err != nil {
		return NewStorageError("sqlite", "set_availability", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return NewStorageError("sqlite", "set_availability", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes prepared statements and the database.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.putStmt, s.ensureStmt, s.setStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (provider.Record, error) {
	var (
		rec  provider.Record
		kind string
	)
	err := row.Scan(&rec.ID, &rec.Name, &kind, &rec.CanReceive, &rec.CanSend, &rec.HomeVisible, &rec.IsAvailable)
	if err != nil {
		return provider.Record{}, err
	}
	// Unknown kinds are kept verbatim so the engine can reject them.
	rec.Kind = provider.Kind(kind)
	return rec, nil
}

func recordArgs(rec provider.Record) []any {
	return []any{
		rec.ID, rec.Name, string(rec.Kind),
		rec.CanReceive, rec.CanSend, rec.HomeVisible, rec.IsAvailable,
		time.Now().Unix(),
	}
}
