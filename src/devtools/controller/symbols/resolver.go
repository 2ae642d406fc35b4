// Package symbols resolves symbol names to a single definition.
package symbols

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uber/devtools-mcp/src/devtools/entity"
	languageserver "github.com/uber/devtools-mcp/src/devtools/gateway/language-server"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the symbol resolver.
var Module = fx.Provide(New)

// Location heuristic weights used to pick one definition among same-named symbols of the same kind.
const (
	_scoreSourceDir   = 50
	_scoreTestPath    = -30
	_scoreBuildDir    = -40
	_scoreSourceExt   = 20
	_scorePerDepth    = -2
	_scoreEntryFile   = 30
	_scoreModuleFile  = 10
	_primarySourceDir = "src"
	_primarySourceExt = ".rs"
)

var (
	_buildDirs   = map[string]struct{}{"target": {}, "build": {}, "generated": {}, "gen": {}, "out": {}}
	_testMarkers = []string{"test", "spec"}
	_entryFiles  = map[string]struct{}{"lib.rs": {}, "main.rs": {}}
	_moduleFiles = map[string]struct{}{"mod.rs": {}}
)

// Resolver resolves a symbol name to a unique definition.
type Resolver interface {
	// Resolve queries the server for name. With several candidates left after deduplication, hint narrows them
	// by file path. It fails with NotFoundError or with an AmbiguousError listing every remaining candidate.
	Resolve(ctx context.Context, server languageserver.Session, name string, hint string) (entity.SymbolCandidate, error)
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
}

type resolver struct {
	logger *zap.SugaredLogger
}

// New creates a resolver.
func New(p Params) Resolver {
	return &resolver{logger: p.Logger.With("component", "symbols")}
}

func (r *resolver) Resolve(ctx context.Context, server languageserver.Session, name string, hint string) (entity.SymbolCandidate, error) {
	candidates, err := server.WorkspaceSymbols(ctx, name)
	if err != nil {
		return entity.SymbolCandidate{}, fmt.Errorf("searching for symbol %q: %w", name, err)
	}
	candidates = exactMatches(candidates, name)

	switch len(candidates) {
	case 0:
		return entity.SymbolCandidate{}, &errors.NotFoundError{Kind: "symbol", Name: name}
	case 1:
		return candidates[0], nil
	}

	candidates = dedupe(server.Root(), candidates)
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// A hint only resolves when it singles out one candidate. Otherwise every candidate is listed.
	if hint != "" {
		if narrowed := narrow(candidates, hint); len(narrowed) == 1 {
			return narrowed[0], nil
		}
	}

	r.logger.Debugw("ambiguous symbol", "name", name, "hint", hint, "candidates", len(candidates))
	return entity.SymbolCandidate{}, ambiguous(name, candidates)
}

// exactMatches keeps the candidates named exactly like the query, when there are any.
// Servers answer workspace symbol queries with fuzzy matches.
func exactMatches(candidates []entity.SymbolCandidate, name string) []entity.SymbolCandidate {
	exact := make([]entity.SymbolCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == name {
			exact = append(exact, c)
		}
	}
	if len(exact) == 0 {
		return candidates
	}
	return exact
}

// dedupe keeps the best scoring candidate of each (name, kind) group, in first-seen group order.
// Equal scores keep the first candidate seen.
func dedupe(root string, candidates []entity.SymbolCandidate) []entity.SymbolCandidate {
	type key struct {
		name string
		kind string
	}
	type best struct {
		index int
		score int
	}

	groups := make(map[key]best, len(candidates))
	order := make([]key, 0, len(candidates))
	kept := make([]entity.SymbolCandidate, 0, len(candidates))

	for _, c := range candidates {
		k := key{name: c.Name, kind: mapper.SymbolKindName(c.Kind)}
		s := score(root, c.File())
		b, seen := groups[k]
		if !seen {
			groups[k] = best{index: len(kept), score: s}
			order = append(order, k)
			kept = append(kept, c)
			continue
		}
		if s > b.score {
			kept[b.index] = c
			groups[k] = best{index: b.index, score: s}
		}
	}

	result := make([]entity.SymbolCandidate, 0, len(order))
	for _, k := range order {
		result = append(result, kept[groups[k].index])
	}
	return result
}

// score rates how likely file is to hold the primary definition of a symbol. Paths are taken relative to root.
func score(root string, file string) int {
	rel := file
	if r, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	dirs := strings.Split(rel, "/")
	base := dirs[len(dirs)-1]
	dirs = dirs[:len(dirs)-1]

	s := 0
	for _, d := range dirs {
		if d == _primarySourceDir {
			s += _scoreSourceDir
			break
		}
	}
	lower := strings.ToLower(rel)
	for _, marker := range _testMarkers {
		if strings.Contains(lower, marker) {
			s += _scoreTestPath
			break
		}
	}
	for _, d := range dirs {
		if _, ok := _buildDirs[d]; ok {
			s += _scoreBuildDir
			break
		}
	}
	if filepath.Ext(base) == _primarySourceExt {
		s += _scoreSourceExt
	}
	s += _scorePerDepth * len(dirs)
	if _, ok := _entryFiles[base]; ok {
		s += _scoreEntryFile
	}
	if _, ok := _moduleFiles[base]; ok {
		s += _scoreModuleFile
	}
	return s
}

// narrow keeps the candidates whose file path ends with or contains hint.
func narrow(candidates []entity.SymbolCandidate, hint string) []entity.SymbolCandidate {
	narrowed := make([]entity.SymbolCandidate, 0, len(candidates))
	for _, c := range candidates {
		file := c.File()
		if strings.Contains(file, hint) {
			narrowed = append(narrowed, c)
		}
	}
	return narrowed
}

func ambiguous(name string, candidates []entity.SymbolCandidate) *errors.AmbiguousError {
	err := &errors.AmbiguousError{Name: name, Candidates: make([]errors.Candidate, 0, len(candidates))}
	for _, c := range candidates {
		err.Candidates = append(err.Candidates, errors.Candidate{
			Name: c.Name,
			Kind: mapper.SymbolKindName(c.Kind),
			File: c.File(),
		})
	}
	return err
}
