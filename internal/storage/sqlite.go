package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteSlot stores the value as one row of a key/value table in a SQLite
// database. Several slots may share one database file.
type SQLiteSlot struct {
	pool   *sqlitex.Pool
	path   string
	key    string
	logger *slog.Logger
}

// OpenSQLiteSlot opens (creating if needed) the database at path and
// returns the slot named key. The caller must Close the slot.
func OpenSQLiteSlot(path, key string, logger *slog.Logger) (*SQLiteSlot, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if path != ":memory:" {
		//nolint:gosec // G301: 0755 is appropriate for user-accessible task directory
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite slot: creating directory for %s: %w", path, err)
		}
	}

	// One connection: the store is single-threaded and in-memory
	// databases are per connection.
	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    1,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite slot: opening %s: %w", path, err)
	}

	logger.Debug("sqlite slot opened", "path", path, "key", key)
	return &SQLiteSlot{pool: pool, path: path, key: key, logger: logger}, nil
}

// prepareConnection applies pragmas and creates the slot table. It runs
// once per connection, on first use.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite slot: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, slotSchema, nil); err != nil {
		return fmt.Errorf("sqlite slot: creating schema: %w", err)
	}
	return nil
}

// Key returns the slot name.
func (s *SQLiteSlot) Key() string {
	return s.key
}

// Read returns the stored value, or nil if the key has no row.
func (s *SQLiteSlot) Read() ([]byte, error) {
	conn, err := s.take()
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var value []byte
	err = sqlitex.Execute(conn, `SELECT value FROM slots WHERE key = ?`, &sqlitex.ExecOptions{
		Args: []any{s.key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = []byte(stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite slot: reading %s: %w", s.key, err)
	}
	return value, nil
}

// Write upserts the value inside an immediate transaction.
func (s *SQLiteSlot) Write(data []byte) (err error) {
	conn, err := s.take()
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("sqlite slot: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	err = sqlitex.Execute(conn,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{s.key, string(data)}},
	)
	if err != nil {
		return fmt.Errorf("sqlite slot: writing %s: %w", s.key, err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteSlot) Close() error {
	if s.pool == nil {
		return nil
	}
	err := s.pool.Close()
	s.pool = nil
	if err != nil {
		return fmt.Errorf("sqlite slot: closing %s: %w", s.path, err)
	}
	s.logger.Debug("sqlite slot closed", "path", s.path)
	return nil
}

func (s *SQLiteSlot) take() (*sqlite.Conn, error) {
	if s.pool == nil {
		return nil, ClosedError{Key: s.key}
	}
	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sqlite slot: take: %w", err)
	}
	return conn, nil
}
