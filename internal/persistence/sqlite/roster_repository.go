package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
)

// RosterRepository implements persistence.RosterRepository on SQLite, with
// roster documents flattened into a header row plus ordered event rows.
type RosterRepository struct {
	pool *ConnectionPool
}

// NewRosterRepository creates a SQLite-backed roster repository.
func NewRosterRepository(pool *ConnectionPool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// PutRoster creates or wholesale-overwrites the document under its id. The
// previous event rows are removed; there is no merge.
func (r *RosterRepository) PutRoster(ctx context.Context, businessID string, doc persistence.RosterDocument) error {
	if doc.ID == "" || businessID == "" {
		return fmt.Errorf("sqlite: roster id and business id are required")
	}

	now := time.Now().UTC()
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rosters (business_id, id, store_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (business_id, id) DO UPDATE SET
				store_id = excluded.store_id,
				updated_at = excluded.updated_at`,
			businessID, doc.ID, doc.StoreID, formatInstant(now), formatInstant(now),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert roster %s: %w", doc.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM roster_events WHERE business_id = ? AND roster_id = ?`,
			businessID, doc.ID,
		); err != nil {
			return fmt.Errorf("failed to clear roster events for %s: %w", doc.ID, err)
		}

		for position, event := range doc.Events {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO roster_events
					(business_id, roster_id, position, id, employee_id, employee_name,
					 start_time, end_time, all_day, color, duration)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				businessID, doc.ID, position, event.ID,
				event.EmployeeID, event.EmployeeName,
				formatInstant(event.Start), formatInstant(event.End),
				boolToInt(event.AllDay), event.Color, event.Duration,
			); err != nil {
				return fmt.Errorf("failed to insert roster event %s: %w", event.ID, err)
			}
		}
		return nil
	})
}

// GetRoster fetches a single document by id.
func (r *RosterRepository) GetRoster(ctx context.Context, businessID, rosterID string) (persistence.RosterDocument, error) {
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, store_id, created_at, updated_at
		FROM rosters WHERE business_id = ? AND id = ?`,
		businessID, rosterID,
	)

	doc, err := scanRoster(row)
	if err == sql.ErrNoRows {
		return persistence.RosterDocument{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.RosterDocument{}, fmt.Errorf("failed to get roster %s: %w", rosterID, err)
	}

	events, err := r.loadEvents(ctx, businessID, rosterID)
	if err != nil {
		return persistence.RosterDocument{}, err
	}
	doc.Events = events
	return doc, nil
}

// ListRostersForStore fetches every roster document ever saved for the
// store, in ascending id order.
func (r *RosterRepository) ListRostersForStore(ctx context.Context, businessID, storeID string) ([]persistence.RosterDocument, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, store_id, created_at, updated_at
		FROM rosters WHERE business_id = ? AND store_id = ?
		ORDER BY id ASC`,
		businessID, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters for store %s: %w", storeID, err)
	}
	defer rows.Close()

	documents := make([]persistence.RosterDocument, 0)
	for rows.Next() {
		doc, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rosters: %w", err)
	}

	for i := range documents {
		events, err := r.loadEvents(ctx, businessID, documents[i].ID)
		if err != nil {
			return nil, err
		}
		documents[i].Events = events
	}
	return documents, nil
}

// DeleteRoster removes a document and its events. Deleting an absent id is
// a no-op.
func (r *RosterRepository) DeleteRoster(ctx context.Context, businessID, rosterID string) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM roster_events WHERE business_id = ? AND roster_id = ?`,
			businessID, rosterID,
		); err != nil {
			return fmt.Errorf("failed to delete roster events for %s: %w", rosterID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM rosters WHERE business_id = ? AND id = ?`,
			businessID, rosterID,
		); err != nil {
			return fmt.Errorf("failed to delete roster %s: %w", rosterID, err)
		}
		return nil
	})
}

func (r *RosterRepository) loadEvents(ctx context.Context, businessID, rosterID string) ([]persistence.ShiftEventRecord, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, employee_id, employee_name, start_time, end_time, all_day, color, duration
		FROM roster_events WHERE business_id = ? AND roster_id = ?
		ORDER BY position ASC`,
		businessID, rosterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for roster %s: %w", rosterID, err)
	}
	defer rows.Close()

	events := make([]persistence.ShiftEventRecord, 0)
	for rows.Next() {
		var (
			record           persistence.ShiftEventRecord
			startRaw, endRaw any
			allDay           int
		)
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.EmployeeName,
			&startRaw, &endRaw, &allDay, &record.Color, &record.Duration,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster event: %w", err)
		}
		if record.Start, err = parseInstant(startRaw); err != nil {
			return nil, fmt.Errorf("roster event %s: %w", record.ID, err)
		}
		if record.End, err = parseInstant(endRaw); err != nil {
			return nil, fmt.Errorf("roster event %s: %w", record.ID, err)
		}
		record.AllDay = allDay != 0
		events = append(events, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoster(row rowScanner) (persistence.RosterDocument, error) {
	var (
		doc                    persistence.RosterDocument
		createdRaw, updatedRaw any
	)
	if err := row.Scan(&doc.ID, &doc.StoreID, &createdRaw, &updatedRaw); err != nil {
		return persistence.RosterDocument{}, err
	}
	var err error
	if doc.CreatedAt, err = parseInstant(createdRaw); err != nil {
		return persistence.RosterDocument{}, err
	}
	if doc.UpdatedAt, err = parseInstant(updatedRaw); err != nil {
		return persistence.RosterDocument{}, err
	}
	return doc, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseInstant materializes a stored timestamp. The write path stores
// RFC3339 text, but documents imported from the previous backend carry raw
// epoch-millisecond integers, so the read path accepts both.
func parseInstant(raw any) (time.Time, error) {
	switch value := raw.(type) {
	case time.Time:
		return value, nil
	case string:
		return parseInstantText(value)
	case []byte:
		return parseInstantText(string(value))
	case int64:
		return time.UnixMilli(value).UTC(), nil
	case float64:
		return time.UnixMilli(int64(value)).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("timestamp is null")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", raw)
	}
}

func parseInstantText(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
