package errors

import "fmt"

// InvalidEditError indicates that an edit range could not be applied to a file.
type InvalidEditError struct {
	File   string
	Reason string
}

// Error is an implementation of the error interface.
func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("invalid edit for %q: %s", e.File, e.Reason)
}

// IOError indicates a filesystem access failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error is an implementation of the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
