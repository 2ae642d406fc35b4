package errors

import "fmt"

// ProtocolError indicates a failure communicating with a language server subprocess.
type ProtocolError struct {
	Method string
	Err    error
}

// Error is an implementation of the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("language server %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AlreadyShutDownError is returned when a session is shut down a second time.
type AlreadyShutDownError struct {
	Root string
}

// Error is an implementation of the error interface.
func (e *AlreadyShutDownError) Error() string {
	return fmt.Sprintf("language server for %q is already shut down", e.Root)
}
