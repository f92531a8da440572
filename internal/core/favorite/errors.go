package favorite

import "errors"

// Operations that persist the list.
var (
	ErrSave   = errors.New("could not save favorite table")
	ErrRemove = errors.New("could not remove favorite table")
)

// Error reports a failed write of the favorites list to its backend. The
// cached list has already been updated when an Error is returned.
type Error struct {
	// Op is ErrSave or ErrRemove.
	Op error
	// Detail is the raw error reported by the backend.
	Detail string
	Err    error
}

func newError(op error, err error) *Error {
	return &Error{Op: op, Detail: err.Error(), Err: err}
}

// SaveError wraps a backend failure that happened while saving.
func SaveError(err error) *Error { return newError(ErrSave, err) }

// RemoveError wraps a backend failure that happened while removing.
func RemoveError(err error) *Error { return newError(ErrRemove, err) }

// Message is the user facing summary of the failure.
func (e *Error) Message() string {
	return e.Op.Error()
}

func (e *Error) Error() string {
	return e.Message() + ": " + e.Detail
}

func (e *Error) Unwrap() []error {
	return []error{e.Op, e.Err}
}
