package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roster-scheduler/internal/persistence"
)

// EmployeeRepository implements persistence.EmployeeRepository on SQLite.
type EmployeeRepository struct {
	pool *ConnectionPool
}

// NewEmployeeRepository creates a SQLite-backed employee directory.
func NewEmployeeRepository(pool *ConnectionPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// PutEmployee inserts or replaces an employee record.
func (r *EmployeeRepository) PutEmployee(ctx context.Context, businessID string, employee persistence.Employee) error {
	if employee.ID == "" || businessID == "" {
		return fmt.Errorf("sqlite: employee id and business id are required")
	}
	now := formatInstant(time.Now().UTC())
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO employees (business_id, id, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (business_id, id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			updated_at = excluded.updated_at`,
		businessID, employee.ID, employee.Name, employee.Role, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert employee %s: %w", employee.ID, err)
	}
	return nil
}

// GetEmployee fetches one employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, businessID, employeeID string) (persistence.Employee, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT id, name, role, created_at, updated_at FROM employees WHERE business_id = ? AND id = ?`,
		businessID, employeeID,
	)
	employee, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Employee{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployees returns every employee for the business ordered by name.
func (r *EmployeeRepository) ListEmployees(ctx context.Context, businessID string) ([]persistence.Employee, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, name, role, created_at, updated_at FROM employees WHERE business_id = ? ORDER BY name ASC, id ASC`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]persistence.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// DeleteEmployee removes an employee record. Absent ids are a no-op.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	if _, err := r.pool.db.ExecContext(ctx,
		`DELETE FROM employees WHERE business_id = ? AND id = ?`,
		businessID, employeeID,
	); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	return nil
}

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var (
		employee               persistence.Employee
		createdRaw, updatedRaw any
	)
	if err := row.Scan(&employee.ID, &employee.Name, &employee.Role, &createdRaw, &updatedRaw); err != nil {
		return persistence.Employee{}, err
	}
	var err error
	if employee.CreatedAt, err = parseInstant(createdRaw); err != nil {
		return persistence.Employee{}, err
	}
	if employee.UpdatedAt, err = parseInstant(updatedRaw); err != nil {
		return persistence.Employee{}, err
	}
	return employee, nil
}
