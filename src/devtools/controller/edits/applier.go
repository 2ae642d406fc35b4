// Package edits applies workspace edits to files and holds previewed edits until they are confirmed.
package edits

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	protocolmapper "github.com/uber/devtools-mcp/src/devtools/internal/protocol"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the edit applier and the pending edit store.
var Module = fx.Provide(
	NewApplier,
	NewStore,
)

// Applier writes workspace edits to disk.
type Applier interface {
	// Apply edits each file independently: a file is read once, all of its edits are validated and applied in memory,
	// and the file is written once. A failure on one file leaves the files written before it applied.
	// It returns the files written, in order.
	Apply(edit protocol.WorkspaceEdit) ([]string, error)
	// Preview renders the edit as a unified diff without writing anything.
	Preview(edit protocol.WorkspaceEdit) (string, error)
}

// ApplierParams are the inputs of NewApplier.
type ApplierParams struct {
	fx.In

	Logger *zap.SugaredLogger
	FS     fs.DevtoolsFS
	Stats  tally.Scope
}

type applier struct {
	logger  *zap.SugaredLogger
	fs      fs.DevtoolsFS
	applied tally.Counter
}

// NewApplier creates an Applier.
func NewApplier(p ApplierParams) Applier {
	return &applier{
		logger:  p.Logger.With("component", "edits"),
		fs:      p.FS,
		applied: p.Stats.SubScope("edits").Counter("applied_files"),
	}
}

func (a *applier) Apply(edit protocol.WorkspaceEdit) ([]string, error) {
	files, byFile := EditsByFile(edit)
	written := make([]string, 0, len(files))
	for _, file := range files {
		original, updated, err := a.editFile(file, byFile[file])
		if err != nil {
			return written, err
		}
		if bytes.Equal(original, updated) {
			continue
		}
		if err := a.fs.WriteFile(file, updated); err != nil {
			return written, &errors.IOError{Op: "write", Path: file, Err: err}
		}
		a.applied.Inc(1)
		written = append(written, file)
		a.logger.Debugw("applied edits", "file", file, "edits", len(byFile[file]))
	}
	return written, nil
}

func (a *applier) Preview(edit protocol.WorkspaceEdit) (string, error) {
	files, byFile := EditsByFile(edit)
	var preview bytes.Buffer
	for _, file := range files {
		original, updated, err := a.editFile(file, byFile[file])
		if err != nil {
			return "", err
		}
		preview.WriteString(UnifiedDiff(file, string(original), string(updated)))
	}
	return preview.String(), nil
}

func (a *applier) editFile(file string, edits []protocol.TextEdit) (original []byte, updated []byte, err error) {
	original, err = a.fs.ReadFile(file)
	if err != nil {
		return nil, nil, &errors.IOError{Op: "read", Path: file, Err: err}
	}
	updated, err = ApplyTextEdits(file, original, edits)
	if err != nil {
		return nil, nil, err
	}
	return original, updated, nil
}

// EditsByFile collects the text edits of both the changes map and the document changes, grouped by file path.
// Files are returned in lexical order.
func EditsByFile(edit protocol.WorkspaceEdit) ([]string, map[string][]protocol.TextEdit) {
	byFile := make(map[string][]protocol.TextEdit)
	for u, edits := range edit.Changes {
		file := u.Filename()
		byFile[file] = append(byFile[file], edits...)
	}
	for _, change := range edit.DocumentChanges {
		file := change.TextDocument.URI.Filename()
		byFile[file] = append(byFile[file], change.Edits...)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, byFile
}

type offsetEdit struct {
	index int
	start int
	end   int
	text  string
}

// ApplyTextEdits applies edits to content. Positions count characters within their line.
// Edits are applied from the furthest to the nearest so that earlier offsets stay valid; inserts at the same
// position keep their given order. Any invalid or overlapping range fails the whole batch.
func ApplyTextEdits(file string, content []byte, edits []protocol.TextEdit) ([]byte, error) {
	m := protocolmapper.NewTextOffsetMapper(content)
	offsets := make([]offsetEdit, 0, len(edits))
	for i, e := range edits {
		start, err := m.PositionOffset(e.Range.Start)
		if err != nil {
			return nil, &errors.InvalidEditError{File: file, Reason: fmt.Sprintf("start of edit %d: %v", i, err)}
		}
		end, err := m.PositionOffset(e.Range.End)
		if err != nil {
			return nil, &errors.InvalidEditError{File: file, Reason: fmt.Sprintf("end of edit %d: %v", i, err)}
		}
		if start > end {
			return nil, &errors.InvalidEditError{File: file, Reason: fmt.Sprintf("edit %d starts after it ends", i)}
		}
		offsets = append(offsets, offsetEdit{index: i, start: start, end: end, text: e.NewText})
	}

	sort.Slice(offsets, func(i, j int) bool {
		a, b := offsets[i], offsets[j]
		if a.start != b.start {
			return a.start > b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.index > b.index
	})
	for i := 1; i < len(offsets); i++ {
		if offsets[i].end > offsets[i-1].start {
			return nil, &errors.InvalidEditError{
				File:   file,
				Reason: fmt.Sprintf("edits %d and %d overlap", offsets[i].index, offsets[i-1].index),
			}
		}
	}

	updated := append([]byte(nil), content...)
	for _, e := range offsets {
		var buf bytes.Buffer
		buf.Grow(len(updated) - (e.end - e.start) + len(e.text))
		buf.Write(updated[:e.start])
		buf.WriteString(e.text)
		buf.Write(updated[e.end:])
		updated = buf.Bytes()
	}
	return updated, nil
}
