package testfixtures

import (
	"context"
	"sort"
	"sync"

	"github.com/example/roster-scheduler/internal/persistence"
)

// RosterRepository is an in-memory persistence.RosterRepository for tests.
// The hooks let tests inject failures or observe call ordering.
type RosterRepository struct {
	mu      sync.Mutex
	rosters map[string]map[string]persistence.RosterDocument

	// PutErr, when set, is returned by PutRoster without storing anything.
	PutErr error
	// ListErr, when set, is returned by ListRostersForStore.
	ListErr error
	// OnList, when set, runs before ListRostersForStore reads state. Tests
	// use it to interleave a competing store selection mid-load.
	OnList func(businessID, storeID string)
}

// NewRosterRepository returns an empty in-memory roster repository.
func NewRosterRepository() *RosterRepository {
	return &RosterRepository{rosters: make(map[string]map[string]persistence.RosterDocument)}
}

// PutRoster stores the document, replacing any previous content wholesale.
func (r *RosterRepository) PutRoster(ctx context.Context, businessID string, doc persistence.RosterDocument) error {
	if r.PutErr != nil {
		return r.PutErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rosters[businessID] == nil {
		r.rosters[businessID] = make(map[string]persistence.RosterDocument)
	}
	r.rosters[businessID][doc.ID] = cloneRoster(doc)
	return nil
}

// GetRoster fetches a document by id.
func (r *RosterRepository) GetRoster(ctx context.Context, businessID, rosterID string) (persistence.RosterDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.rosters[businessID][rosterID]
	if !ok {
		return persistence.RosterDocument{}, persistence.ErrNotFound
	}
	return cloneRoster(doc), nil
}

// ListRostersForStore returns every document for the store in ascending id
// order.
func (r *RosterRepository) ListRostersForStore(ctx context.Context, businessID, storeID string) ([]persistence.RosterDocument, error) {
	if r.OnList != nil {
		r.OnList(businessID, storeID)
	}
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	documents := make([]persistence.RosterDocument, 0)
	for _, doc := range r.rosters[businessID] {
		if doc.StoreID == storeID {
			documents = append(documents, cloneRoster(doc))
		}
	}
	sort.Slice(documents, func(i, j int) bool { return documents[i].ID < documents[j].ID })
	return documents, nil
}

// DeleteRoster removes a document; absent ids are a no-op.
func (r *RosterRepository) DeleteRoster(ctx context.Context, businessID, rosterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rosters[businessID], rosterID)
	return nil
}

// StoreRepository is an in-memory persistence.StoreRepository for tests.
type StoreRepository struct {
	mu     sync.Mutex
	stores map[string]map[string]persistence.Store
}

// NewStoreRepository returns an empty in-memory store catalog.
func NewStoreRepository() *StoreRepository {
	return &StoreRepository{stores: make(map[string]map[string]persistence.Store)}
}

// PutStore inserts or replaces a store.
func (r *StoreRepository) PutStore(ctx context.Context, businessID string, store persistence.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stores[businessID] == nil {
		r.stores[businessID] = make(map[string]persistence.Store)
	}
	r.stores[businessID][store.ID] = store
	return nil
}

// GetStore fetches a store by id.
func (r *StoreRepository) GetStore(ctx context.Context, businessID, storeID string) (persistence.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[businessID][storeID]
	if !ok {
		return persistence.Store{}, persistence.ErrNotFound
	}
	return store, nil
}

// ListStores returns every store for the business ordered by name.
func (r *StoreRepository) ListStores(ctx context.Context, businessID string) ([]persistence.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stores := make([]persistence.Store, 0, len(r.stores[businessID]))
	for _, store := range r.stores[businessID] {
		stores = append(stores, store)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })
	return stores, nil
}

// DeleteStore removes a store; absent ids are a no-op.
func (r *StoreRepository) DeleteStore(ctx context.Context, businessID, storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores[businessID], storeID)
	return nil
}

// EmployeeRepository is an in-memory persistence.EmployeeRepository for
// tests.
type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]map[string]persistence.Employee
}

// NewEmployeeRepository returns an empty in-memory employee directory.
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]map[string]persistence.Employee)}
}

// PutEmployee inserts or replaces an employee.
func (r *EmployeeRepository) PutEmployee(ctx context.Context, businessID string, employee persistence.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.employees[businessID] == nil {
		r.employees[businessID] = make(map[string]persistence.Employee)
	}
	r.employees[businessID][employee.ID] = employee
	return nil
}

// GetEmployee fetches an employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, businessID, employeeID string) (persistence.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[businessID][employeeID]
	if !ok {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	return employee, nil
}

// ListEmployees returns every employee for the business ordered by name.
func (r *EmployeeRepository) ListEmployees(ctx context.Context, businessID string) ([]persistence.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employees := make([]persistence.Employee, 0, len(r.employees[businessID]))
	for _, employee := range r.employees[businessID] {
		employees = append(employees, employee)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// DeleteEmployee removes an employee; absent ids are a no-op.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.employees[businessID], employeeID)
	return nil
}

func cloneRoster(doc persistence.RosterDocument) persistence.RosterDocument {
	cloned := doc
	cloned.Events = make([]persistence.ShiftEventRecord, len(doc.Events))
	copy(cloned.Events, doc.Events)
	return cloned
}
