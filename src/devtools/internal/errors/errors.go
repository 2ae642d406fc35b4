package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// ErrNoProjectIdentifier reports that a tool call is missing the project it targets.
	ErrNoProjectIdentifier = New("project identifier is required")
	// ErrNoEdit reports that an apply request carries neither a pending edit ID nor an edit.
	ErrNoEdit = New("either edit_id or edit is required")
	// ErrNotRenameable reports that the language server returned no edit for a rename.
	ErrNotRenameable = New("could not perform rename: the symbol at the given location may not be renameable")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, ErrNoProjectIdentifier) || stderr.Is(e, ErrNoEdit)
}
