package errors

import (
	stderr "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  &NotFoundError{Kind: "symbol", Name: "Foo"},
			want: `symbol "Foo" not found`,
		},
		{
			name: "already loaded",
			err:  &AlreadyLoadedError{Root: "/src/app"},
			want: `project "/src/app" is already loaded`,
		},
		{
			name: "already shut down",
			err:  &AlreadyShutDownError{Root: "/src/app"},
			want: `language server for "/src/app" is already shut down`,
		},
		{
			name: "invalid edit",
			err:  &InvalidEditError{File: "/src/app/lib.rs", Reason: "end before start"},
			want: `invalid edit for "/src/app/lib.rs": end before start`,
		},
		{
			name: "protocol",
			err:  &ProtocolError{Method: "initialize", Err: New("closed pipe")},
			want: "language server initialize: closed pipe",
		},
		{
			name: "io",
			err:  &IOError{Op: "read", Path: "/tmp/x", Err: fs.ErrNotExist},
			want: `read "/tmp/x": file does not exist`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestAmbiguousErrorListsCandidates(t *testing.T) {
	err := &AmbiguousError{
		Name: "Config",
		Candidates: []Candidate{
			{Name: "Config", Kind: "Struct", File: "/p/src/config.rs"},
			{Name: "Config", Kind: "Module", File: "/p/src/lib.rs"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "`Config` (kind: Struct) in `/p/src/config.rs`")
	assert.Contains(t, msg, "`Config` (kind: Module) in `/p/src/lib.rs`")
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("applying edit: %w", &IOError{Op: "write", Path: "/x", Err: fs.ErrPermission})

	var ioErr *IOError
	require.True(t, stderr.As(wrapped, &ioErr))
	assert.True(t, stderr.Is(wrapped, fs.ErrPermission))

	perr := &ProtocolError{Method: "shutdown", Err: fs.ErrClosed}
	assert.True(t, stderr.Is(perr, fs.ErrClosed))
}
