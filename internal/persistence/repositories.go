package persistence

import "context"

// RosterRepository stores roster documents under business-scoped paths
// analogous to businesses/{businessID}/rosters/{rosterID}.
type RosterRepository interface {
	// PutRoster creates or wholesale-overwrites the document under its id.
	PutRoster(ctx context.Context, businessID string, doc RosterDocument) error
	// GetRoster fetches a single document by id.
	GetRoster(ctx context.Context, businessID, rosterID string) (RosterDocument, error)
	// ListRostersForStore fetches every roster document ever saved for the
	// store, regardless of week, in ascending id order.
	ListRostersForStore(ctx context.Context, businessID, storeID string) ([]RosterDocument, error)
	// DeleteRoster removes a document; deleting an absent id is a no-op.
	DeleteRoster(ctx context.Context, businessID, rosterID string) error
}

// StoreRepository exposes the store catalog under businesses/{id}/stores.
type StoreRepository interface {
	PutStore(ctx context.Context, businessID string, store Store) error
	GetStore(ctx context.Context, businessID, storeID string) (Store, error)
	ListStores(ctx context.Context, businessID string) ([]Store, error)
	DeleteStore(ctx context.Context, businessID, storeID string) error
}

// EmployeeRepository exposes the employee directory under
// businesses/{id}/employees.
type EmployeeRepository interface {
	PutEmployee(ctx context.Context, businessID string, employee Employee) error
	GetEmployee(ctx context.Context, businessID, employeeID string) (Employee, error)
	ListEmployees(ctx context.Context, businessID string) ([]Employee, error)
	DeleteEmployee(ctx context.Context, businessID, employeeID string) error
}
