package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/example/roster-scheduler/internal/persistence"
)

// StoreDirectory exposes the store catalog to the roster surface.
type StoreDirectory struct {
	stores     persistence.StoreRepository
	businessID string
	logger     *slog.Logger
}

// NewStoreDirectory wires the store catalog lookups.
func NewStoreDirectory(stores persistence.StoreRepository, businessID string, logger *slog.Logger) *StoreDirectory {
	return &StoreDirectory{stores: stores, businessID: businessID, logger: defaultLogger(logger)}
}

// ListStores enumerates the business's stores ordered by name.
func (d *StoreDirectory) ListStores(ctx context.Context) ([]persistence.Store, error) {
	if d == nil || d.stores == nil {
		return nil, fmt.Errorf("store repository not configured")
	}
	if d.businessID == "" {
		return nil, ErrBusinessContextMissing
	}
	stores, err := d.stores.ListStores(ctx, d.businessID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })
	return stores, nil
}

// GetStore fetches a single store by id.
func (d *StoreDirectory) GetStore(ctx context.Context, storeID string) (persistence.Store, error) {
	if d == nil || d.stores == nil {
		return persistence.Store{}, fmt.Errorf("store repository not configured")
	}
	if d.businessID == "" {
		return persistence.Store{}, ErrBusinessContextMissing
	}
	store, err := d.stores.GetStore(ctx, d.businessID, storeID)
	if err != nil {
		return persistence.Store{}, mapRepoError(err)
	}
	return store, nil
}

// EmployeeDirectory exposes the employee list to the roster surface. The
// sidebar drags entries from this list onto the calendar.
type EmployeeDirectory struct {
	employees  persistence.EmployeeRepository
	businessID string
	logger     *slog.Logger
}

// NewEmployeeDirectory wires the employee lookups.
func NewEmployeeDirectory(employees persistence.EmployeeRepository, businessID string, logger *slog.Logger) *EmployeeDirectory {
	return &EmployeeDirectory{employees: employees, businessID: businessID, logger: defaultLogger(logger)}
}

// ListEmployees enumerates the business's employees ordered by name.
func (d *EmployeeDirectory) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	if d == nil || d.employees == nil {
		return nil, fmt.Errorf("employee repository not configured")
	}
	if d.businessID == "" {
		return nil, ErrBusinessContextMissing
	}
	employees, err := d.employees.ListEmployees(ctx, d.businessID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// GetEmployee fetches a single employee by id.
func (d *EmployeeDirectory) GetEmployee(ctx context.Context, employeeID string) (persistence.Employee, error) {
	if d == nil || d.employees == nil {
		return persistence.Employee{}, fmt.Errorf("employee repository not configured")
	}
	if d.businessID == "" {
		return persistence.Employee{}, ErrBusinessContextMissing
	}
	employee, err := d.employees.GetEmployee(ctx, d.businessID, employeeID)
	if err != nil {
		return persistence.Employee{}, mapRepoError(err)
	}
	return employee, nil
}
