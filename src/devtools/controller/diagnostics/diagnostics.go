// Package diagnostics correlates build diagnostics with the fixes the language server offers for them.
package diagnostics

import (
	"context"
	"path/filepath"

	"github.com/uber/devtools-mcp/src/devtools/entity"
	buildtool "github.com/uber/devtools-mcp/src/devtools/gateway/build-tool"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// _maxConcurrentLookups bounds the code action requests queued on one session.
const _maxConcurrentLookups = 4

// Module provides the diagnostics controller.
var Module = fx.Provide(New)

// Controller checks projects.
type Controller interface {
	// Check returns the rendered text of every actionable diagnostic.
	Check(ctx context.Context, s *project.Session) ([]string, error)
	// CheckWithFixes returns every diagnostic that has a primary span, with the code actions available at that span.
	CheckWithFixes(ctx context.Context, s *project.Session) ([]entity.DiagnosticWithFixes, error)
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	BuildTool buildtool.Runner
}

type controller struct {
	logger    *zap.SugaredLogger
	buildTool buildtool.Runner
}

// New creates the diagnostics controller.
func New(p Params) Controller {
	return &controller{
		logger:    p.Logger.With("component", "diagnostics"),
		buildTool: p.BuildTool,
	}
}

func (c *controller) Check(ctx context.Context, s *project.Session) ([]string, error) {
	return c.buildTool.CheckRendered(ctx, s.Project)
}

func (c *controller) CheckWithFixes(ctx context.Context, s *project.Session) ([]entity.DiagnosticWithFixes, error) {
	diagnostics, err := c.buildTool.Check(ctx, s.Project)
	if err != nil {
		return nil, err
	}

	results := make([]entity.DiagnosticWithFixes, 0, len(diagnostics))
	spans := make([]entity.Span, 0, len(diagnostics))
	for _, d := range diagnostics {
		span, ok := d.PrimarySpan()
		if !ok {
			continue
		}
		spans = append(spans, span)
		results = append(results, entity.DiagnosticWithFixes{
			FilePath:       span.File,
			Severity:       d.Severity,
			Message:        d.Rendered,
			Line:           span.LineStart,
			Character:      span.ColStart,
			AvailableFixes: []entity.CodeFix{},
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(_maxConcurrentLookups)
	for i := range results {
		g.Go(func() error {
			file := spans[i].File
			if !filepath.IsAbs(file) {
				file = filepath.Join(s.Project.Root, file)
			}
			fixes, err := s.Server.CodeActions(gctx, file, spans[i].Range())
			if err != nil {
				// A diagnostic without fixes is still reported.
				c.logger.Warnw("code actions unavailable", "file", file, "line", spans[i].LineStart, "error", err)
				return nil
			}
			if len(fixes) > 0 {
				results[i].AvailableFixes = fixes
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
