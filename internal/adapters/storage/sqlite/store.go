// Package sqlite implements the word repository on a relational table with
// transactional batch writes. Every batch runs inside a single transaction:
// duplicates are rejected by the table's uniqueness constraint and swallowed
// rather than surfaced, and the whole batch commits or rolls back as a unit,
// so a reader never observes a partial batch.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"

	"github.com/battulga/wordwall/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	word       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store is a word repository backed by a sqlite database. The underlying
// pool is process-wide: open it once at startup and inject it; connections
// are scoped per call and released on every exit path.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Config contains configuration for the sqlite store.
type Config struct {
	// DSN is the sqlite data source name, e.g. file:words.db.
	DSN string

	Logger *slog.Logger
}

// Open opens the database, runs the schema migration, and returns the store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	store, err := New(db, cfg.Logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// New wraps an existing database handle, running the schema migration.
func New(db *sql.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrating words table: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker by pinging the pool.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListWords returns every stored word, most recently inserted first.
// Ordering follows the rowid sequence, so ties within one batch keep
// insertion order rather than text order.
func (s *Store) ListWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY id DESC`)
	if err != nil {
		return nil, unavailable("listing words", err)
	}
	defer rows.Close()

	words := make([]string, 0)

	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, unavailable("scanning word row", err)
		}

		words = append(words, word)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterating word rows", err)
	}

	return words, nil
}

// AddWords inserts the words not already present inside one transaction and
// returns them in input order. Conflicts with existing rows are swallowed by
// ON CONFLICT DO NOTHING; the batch commits or rolls back as a unit.
func (s *Store) AddWords(ctx context.Context, words []string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("beginning transaction", err)
	}
	// No-op once Commit succeeds; releases the connection on every
	// failure path.
	defer func() { _ = tx.Rollback() }()

	added := make([]string, 0, len(words))

	for _, word := range words {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO words (word) VALUES (?) ON CONFLICT(word) DO NOTHING`, word)
		if err != nil {
			return nil, unavailable("inserting word", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return nil, unavailable("checking insert result", err)
		}

		if n > 0 {
			added = append(added, word)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("committing batch", err)
	}

	return added, nil
}

// RemoveWords deletes each listed word if present inside one transaction and
// returns the number of rows actually deleted. Absent words are no-ops.
func (s *Store) RemoveWords(ctx context.Context, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var removed int64

	for _, word := range words {
		res, err := tx.ExecContext(ctx, `DELETE FROM words WHERE word = ?`, word)
		if err != nil {
			return 0, unavailable("deleting word", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, unavailable("checking delete result", err)
		}

		removed += n
	}

	if err := tx.Commit(); err != nil {
		return 0, unavailable("committing batch", err)
	}

	return int(removed), nil
}

// unavailable maps a storage failure to the domain error taxonomy.
func unavailable(operation string, err error) error {
	return domain.NewUnavailableError("sqlite", fmt.Sprintf("%s: %v", operation, err))
}
