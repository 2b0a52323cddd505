package oerror

import "fmt"

// LocomotionError is the error type returned by the locomotion packages. Sentinel errors are
// compared by identity, so they work with errors.Is.
type LocomotionError struct {
	Err string
}

// New creates a new error from the given format and arguments.
func New(format string, args ...any) *LocomotionError {
	if len(args) == 0 {
		return &LocomotionError{Err: format}
	}
	return &LocomotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *LocomotionError) Error() string {
	return e.Err
}
