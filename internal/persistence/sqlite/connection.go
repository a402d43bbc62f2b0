package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ConnectionPool manages the SQLite database handle with transaction
// support.
type ConnectionPool struct {
	db *sql.DB
}

// Open connects to the SQLite database at the given DSN and applies the
// roster schema.
func Open(ctx context.Context, dsn string) (*ConnectionPool, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// The pure-Go driver serializes writes; a single connection avoids
	// SQLITE_BUSY churn under concurrent handlers.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pool := &ConnectionPool{db: db}
	if err := pool.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pool, nil
}

// DB returns the underlying database handle.
func (cp *ConnectionPool) DB() *sql.DB {
	return cp.db
}

// Close closes the connection pool.
func (cp *ConnectionPool) Close() error {
	if cp.db != nil {
		return cp.db.Close()
	}
	return nil
}

// Ping tests the database connection.
func (cp *ConnectionPool) Ping(ctx context.Context) error {
	return cp.db.PingContext(ctx)
}

// Migrate creates the roster schema when absent. The layout is fixed; the
// statements are idempotent.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			business_id TEXT NOT NULL,
			id          TEXT NOT NULL,
			name        TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (business_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			business_id TEXT NOT NULL,
			id          TEXT NOT NULL,
			name        TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (business_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS rosters (
			business_id TEXT NOT NULL,
			id          TEXT NOT NULL,
			store_id    TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (business_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rosters_store
			ON rosters (business_id, store_id)`,
		`CREATE TABLE IF NOT EXISTS roster_events (
			business_id   TEXT NOT NULL,
			roster_id     TEXT NOT NULL,
			position      INTEGER NOT NULL,
			id            TEXT NOT NULL,
			employee_id   TEXT NOT NULL DEFAULT '',
			employee_name TEXT NOT NULL DEFAULT '',
			start_time    TEXT NOT NULL,
			end_time      TEXT NOT NULL,
			all_day       INTEGER NOT NULL DEFAULT 0,
			color         TEXT NOT NULL DEFAULT '',
			duration      REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (business_id, roster_id, position),
			FOREIGN KEY (business_id, roster_id)
				REFERENCES rosters (business_id, id) ON DELETE CASCADE
		)`,
	}

	for _, statement := range statements {
		if _, err := cp.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply roster schema: %w", err)
		}
	}
	return nil
}

// TransactionFunc represents a function that executes within a transaction.
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction executes fn within a database transaction, rolling back
// when fn errors and committing otherwise.
func (cp *ConnectionPool) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	tx, err := cp.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
