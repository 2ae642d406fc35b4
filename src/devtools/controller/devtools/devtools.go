// Package devtools implements the per-project tool operations: symbol lookup, usages, rename, edits and tests.
package devtools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uber/devtools-mcp/src/devtools/controller/edits"
	"github.com/uber/devtools-mcp/src/devtools/controller/symbols"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	buildtool "github.com/uber/devtools-mcp/src/devtools/gateway/build-tool"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	protocolmapper "github.com/uber/devtools-mcp/src/devtools/internal/protocol"
	"github.com/uber/devtools-mcp/src/devtools/mapper"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// NoDocumentation is reported when the server has no hover for a symbol.
	NoDocumentation = "No documentation found."
	// NoSource is reported when the definition of a symbol cannot be read.
	NoSource = "Could not read source file."

	_definitionPrefix = 2
	_definitionSuffix = 5
	_usageContext     = 3
)

// Module provides the devtools controller.
var Module = fx.Provide(New)

// Controller runs tool operations against a loaded project.
type Controller interface {
	SymbolInfo(ctx context.Context, s *project.Session, name string, hint string) (entity.SymbolInfo, error)
	SymbolUsages(ctx context.Context, s *project.Session, name string, hint string) ([]entity.SymbolUsage, error)
	// Rename asks the server for the edit renaming the symbol at (line, character) of file.
	// With apply set the edit is written immediately, otherwise it is held as a pending edit.
	Rename(ctx context.Context, s *project.Session, file string, position protocol.Position, newName string, apply bool) (RenameResult, error)
	// ApplyEdit applies the pending edit with the given ID, or edit when id is empty.
	ApplyEdit(id string, edit *protocol.WorkspaceEdit) ([]string, error)
	Test(ctx context.Context, s *project.Session, name string, backtrace bool) ([]string, error)
	// FileLines returns lines start-prefix through end+suffix of path (0-based, inclusive).
	// ok is false when no line falls in the range.
	FileLines(path string, start, end, prefix, suffix int) (text string, ok bool, err error)
}

// RenameResult holds either the pending edit or the files written.
type RenameResult struct {
	Pending      *entity.PendingEdit
	AppliedFiles []string
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	FS        fs.DevtoolsFS
	Resolver  symbols.Resolver
	Applier   edits.Applier
	Store     edits.Store
	BuildTool buildtool.Runner
}

type controller struct {
	logger    *zap.SugaredLogger
	fs        fs.DevtoolsFS
	resolver  symbols.Resolver
	applier   edits.Applier
	store     edits.Store
	buildTool buildtool.Runner
}

// New creates the devtools controller.
func New(p Params) Controller {
	return &controller{
		logger:    p.Logger.With("component", "devtools"),
		fs:        p.FS,
		resolver:  p.Resolver,
		applier:   p.Applier,
		store:     p.Store,
		buildTool: p.BuildTool,
	}
}

func (c *controller) SymbolInfo(ctx context.Context, s *project.Session, name string, hint string) (entity.SymbolInfo, error) {
	symbol, err := c.resolver.Resolve(ctx, s.Server, name, hint)
	if err != nil {
		return entity.SymbolInfo{}, err
	}
	file := symbol.File()
	rng := symbol.Location.Range

	documentation, err := s.Server.Hover(ctx, file, rng.Start)
	if err != nil {
		c.logger.Debugw("hover failed", "symbol", name, "file", file, "error", err)
	}
	if err != nil || documentation == "" {
		documentation = NoDocumentation
	}

	definition, ok, err := c.FileLines(file, int(rng.Start.Line), int(rng.End.Line), _definitionPrefix, _definitionSuffix)
	if err != nil || !ok {
		definition = NoSource
	}

	return entity.SymbolInfo{
		Symbol:         symbol.Name,
		Kind:           mapper.SymbolKindName(symbol.Kind),
		FilePath:       file,
		StartLine:      rng.Start.Line,
		EndLine:        rng.End.Line,
		Documentation:  documentation,
		DefinitionCode: definition,
	}, nil
}

func (c *controller) SymbolUsages(ctx context.Context, s *project.Session, name string, hint string) ([]entity.SymbolUsage, error) {
	symbol, err := c.resolver.Resolve(ctx, s.Server, name, hint)
	if err != nil {
		return nil, err
	}
	references, err := s.Server.References(ctx, symbol.File(), symbol.Location.Range.Start)
	if err != nil {
		return nil, fmt.Errorf("finding references of %s: %w", name, err)
	}

	usages := make([]entity.SymbolUsage, 0, len(references))
	for _, ref := range references {
		file := ref.URI.Filename()
		excerpt, ok, err := c.FileLines(file, int(ref.Range.Start.Line), int(ref.Range.End.Line), _usageContext, _usageContext)
		if err != nil || !ok {
			c.logger.Debugw("skipping unreadable reference", "file", file, "line", ref.Range.Start.Line, "error", err)
			continue
		}
		usages = append(usages, entity.SymbolUsage{
			FilePath: file,
			Line:     ref.Range.Start.Line + 1,
			Column:   ref.Range.Start.Character + 1,
			Context:  excerpt,
		})
	}
	return usages, nil
}

func (c *controller) Rename(ctx context.Context, s *project.Session, file string, position protocol.Position, newName string, apply bool) (RenameResult, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(s.Project.Root, file)
	}
	edit, err := s.Server.Rename(ctx, file, position, newName)
	if err != nil {
		return RenameResult{}, err
	}
	if edit == nil {
		return RenameResult{}, errors.ErrNotRenameable
	}

	if apply {
		files, err := c.applier.Apply(*edit)
		if err != nil {
			return RenameResult{AppliedFiles: files}, err
		}
		c.logger.Infow("rename applied", "root", s.Project.Root, "newName", newName, "files", len(files))
		return RenameResult{AppliedFiles: files}, nil
	}

	pending, err := c.store.Put(s.Project.Root, fmt.Sprintf("rename to %s", newName), *edit)
	if err != nil {
		return RenameResult{}, err
	}
	return RenameResult{Pending: &pending}, nil
}

func (c *controller) ApplyEdit(id string, edit *protocol.WorkspaceEdit) ([]string, error) {
	switch {
	case id != "":
		pending, err := c.store.Take(id)
		if err != nil {
			return nil, err
		}
		c.logger.Infow("applying pending edit", "id", id, "root", pending.Root, "description", pending.Description)
		return c.applier.Apply(pending.Edit)
	case edit != nil:
		return c.applier.Apply(*edit)
	default:
		return nil, errors.ErrNoEdit
	}
}

func (c *controller) Test(ctx context.Context, s *project.Session, name string, backtrace bool) ([]string, error) {
	return c.buildTool.Test(ctx, s.Project, name, backtrace)
}

func (c *controller) FileLines(path string, start, end, prefix, suffix int) (string, bool, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return "", false, &errors.IOError{Op: "read", Path: path, Err: err}
	}
	start = max(start-prefix, 0)
	lines, ok := protocolmapper.NewTextOffsetMapper(content).Lines(start, end+suffix)
	if !ok {
		return "", false, nil
	}
	return strings.Join(lines, "\n"), true, nil
}
