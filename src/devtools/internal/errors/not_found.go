package errors

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that a project, file or symbol is absent.
type NotFoundError struct {
	// Kind is one of "project", "directory", "file" or "symbol".
	Kind string
	Name string
}

// Error is an implementation of the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Candidate is a single entry of an AmbiguousError.
type Candidate struct {
	Name string
	Kind string
	File string
}

// AmbiguousError indicates that a symbol query matched more than one definition and no hint resolved it.
type AmbiguousError struct {
	Name       string
	Candidates []Candidate
}

// Error is an implementation of the error interface.
func (e *AmbiguousError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "symbol %q is ambiguous, provide a more specific file hint or choose one of the following candidates:", e.Name)
	for _, c := range e.Candidates {
		fmt.Fprintf(&sb, "\n- `%s` (kind: %s) in `%s`", c.Name, c.Kind, c.File)
	}
	return sb.String()
}

// AlreadyLoadedError indicates that a project with the same canonical root is already registered.
type AlreadyLoadedError struct {
	Root string
}

// Error is an implementation of the error interface.
func (e *AlreadyLoadedError) Error() string {
	return fmt.Sprintf("project %q is already loaded", e.Root)
}
