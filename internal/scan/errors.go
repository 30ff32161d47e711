package scan

import "errors"

// ErrProjectAccess indicates the project root is missing or unreadable.
var ErrProjectAccess = errors.New("project root is not accessible")

// ProjectAccessError records which root could not be opened and why.
// It matches ErrProjectAccess with errors.Is.
type ProjectAccessError struct {
	Root string
	Err  error
}

// Error returns a human-readable description including the root path.
func (e *ProjectAccessError) Error() string {
	return "project " + e.Root + ": " + ErrProjectAccess.Error() + ": " + e.Err.Error()
}

// Unwrap returns the underlying filesystem error.
func (e *ProjectAccessError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrProjectAccess.
func (e *ProjectAccessError) Is(target error) bool {
	return target == ErrProjectAccess
}
