package application

import "errors"

var (
	// ErrPastWeekEdit is returned when a mutation targets a calendar date
	// before today. The caller must leave state untouched and surface the
	// rejection to the user.
	ErrPastWeekEdit = errors.New("application: cannot edit past weeks")
	// ErrStoreNotSelected is returned when an operation requires an active
	// store selection and none is set.
	ErrStoreNotSelected = errors.New("application: no store selected")
	// ErrBusinessContextMissing is returned when the session has no business
	// id to scope persistence paths with.
	ErrBusinessContextMissing = errors.New("application: business context missing")
	// ErrUnsavedChanges is returned when navigation or store selection is
	// attempted while the live events differ from the last saved snapshot
	// and the caller has not confirmed discarding them.
	ErrUnsavedChanges = errors.New("application: unsaved changes")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// PersistenceFailure wraps a failed save so transports can distinguish it
// from precondition errors. The in-memory event store is not rolled back.
type PersistenceFailure struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (p *PersistenceFailure) Error() string {
	return "persistence failure during " + p.Op + ": " + p.Err.Error()
}

// Unwrap exposes the underlying repository error.
func (p *PersistenceFailure) Unwrap() error {
	return p.Err
}
