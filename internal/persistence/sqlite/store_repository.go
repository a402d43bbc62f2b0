package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
)

// StoreRepository implements persistence.StoreRepository on SQLite.
type StoreRepository struct {
	pool *ConnectionPool
}

// NewStoreRepository creates a SQLite-backed store catalog.
func NewStoreRepository(pool *ConnectionPool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

// PutStore inserts or replaces a store catalog entry.
func (r *StoreRepository) PutStore(ctx context.Context, businessID string, store persistence.Store) error {
	if store.ID == "" || businessID == "" {
		return fmt.Errorf("sqlite: store id and business id are required")
	}
	now := formatInstant(time.Now().UTC())
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO stores (business_id, id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (business_id, id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at`,
		businessID, store.ID, store.Name, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert store %s: %w", store.ID, err)
	}
	return nil
}

// GetStore fetches one store by id.
func (r *StoreRepository) GetStore(ctx context.Context, businessID, storeID string) (persistence.Store, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM stores WHERE business_id = ? AND id = ?`,
		businessID, storeID,
	)
	store, err := scanStore(row)
	if err == sql.ErrNoRows {
		return persistence.Store{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Store{}, fmt.Errorf("failed to get store %s: %w", storeID, err)
	}
	return store, nil
}

// ListStores returns every store for the business ordered by name.
func (r *StoreRepository) ListStores(ctx context.Context, businessID string) ([]persistence.Store, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM stores WHERE business_id = ? ORDER BY name ASC, id ASC`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := make([]persistence.Store, 0)
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}
	return stores, nil
}

// DeleteStore removes a store catalog entry. Absent ids are a no-op.
func (r *StoreRepository) DeleteStore(ctx context.Context, businessID, storeID string) error {
	if _, err := r.pool.db.ExecContext(ctx,
		`DELETE FROM stores WHERE business_id = ? AND id = ?`,
		businessID, storeID,
	); err != nil {
		return fmt.Errorf("failed to delete store %s: %w", storeID, err)
	}
	return nil
}

func scanStore(row rowScanner) (persistence.Store, error) {
	var (
		store                  persistence.Store
		createdRaw, updatedRaw any
	)
	if err := row.Scan(&store.ID, &store.Name, &createdRaw, &updatedRaw); err != nil {
		return persistence.Store{}, err
	}
	var err error
	if store.CreatedAt, err = parseInstant(createdRaw); err != nil {
		return persistence.Store{}, err
	}
	if store.UpdatedAt, err = parseInstant(updatedRaw); err != nil {
		return persistence.Store{}, err
	}
	return store, nil
}
