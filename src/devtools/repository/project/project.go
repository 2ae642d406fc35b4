package project

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	languageserver "github.com/uber/devtools-mcp/src/devtools/gateway/language-server"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"go.uber.org/fx"
)

// Module provides the project repository.
var Module = fx.Provide(New)

// Session is a loaded project together with its language server session.
type Session struct {
	Project  entity.Project
	Server   languageserver.Session
	indexing atomic.Bool
}

// NewSession creates a loaded project. Indexing starts right after the handshake, so a new session is indexing.
func NewSession(project entity.Project, server languageserver.Session) *Session {
	s := &Session{Project: project, Server: server}
	s.indexing.Store(true)
	return s
}

// IsIndexing reports the last observed indexing state. It is advisory only.
func (s *Session) IsIndexing() bool {
	return s.indexing.Load()
}

// SetIndexing records the last observed indexing state.
func (s *Session) SetIndexing(indexing bool) {
	s.indexing.Store(indexing)
}

// Describe returns a point-in-time description of the session.
func (s *Session) Describe() entity.ProjectDescription {
	return entity.ProjectDescription{
		Root:       s.Project.Root,
		Name:       s.Project.Name(),
		IsIndexing: s.IsIndexing(),
	}
}

// Repository is the concurrent store of loaded projects, keyed by canonical root.
// Reads never block each other, and writes to distinct roots are independent.
type Repository interface {
	// Reserve claims root for a project being loaded. It fails with AlreadyLoadedError when root is loaded or being loaded.
	Reserve(root string) error
	// Release drops a reservation that did not result in Set.
	Release(root string)
	// Set stores a loaded session under its root, fulfilling the reservation.
	Set(session *Session)
	// Get returns the session loaded under root.
	Get(root string) (*Session, bool)
	// Delete removes and returns the session loaded under root.
	Delete(root string) (*Session, bool)
	// List returns the loaded sessions ordered by root.
	List() []*Session
	// Len returns the number of loaded sessions.
	Len() int
}

// slot holds a loaded session, or nothing while the root is reserved.
type slot struct {
	session *Session
}

type repository struct {
	slots  sync.Map
	loaded atomic.Int64
	stats  tally.Scope
}

// New returns a repository of loaded projects.
func New(stats tally.Scope) Repository {
	return &repository{
		stats: stats.SubScope("projects"),
	}
}

func (r *repository) Reserve(root string) error {
	if _, loaded := r.slots.LoadOrStore(root, &slot{}); loaded {
		return &errors.AlreadyLoadedError{Root: root}
	}
	return nil
}

func (r *repository) Release(root string) {
	if v, ok := r.slots.Load(root); ok && v.(*slot).session == nil {
		r.slots.CompareAndDelete(root, v)
	}
}

func (r *repository) Set(session *Session) {
	previous, loaded := r.slots.Swap(session.Project.Root, &slot{session: session})
	if !loaded || previous.(*slot).session == nil {
		r.loaded.Add(1)
	}
	r.updateGauge()
}

func (r *repository) Get(root string) (*Session, bool) {
	v, ok := r.slots.Load(root)
	if !ok {
		return nil, false
	}
	s := v.(*slot).session
	return s, s != nil
}

func (r *repository) Delete(root string) (*Session, bool) {
	v, ok := r.slots.Load(root)
	if !ok || v.(*slot).session == nil {
		return nil, false
	}
	if !r.slots.CompareAndDelete(root, v) {
		return nil, false
	}
	r.loaded.Add(-1)
	r.updateGauge()
	return v.(*slot).session, true
}

func (r *repository) List() []*Session {
	sessions := make([]*Session, 0)
	r.slots.Range(func(_, v any) bool {
		if s := v.(*slot).session; s != nil {
			sessions = append(sessions, s)
		}
		return true
	})
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Project.Root < sessions[j].Project.Root })
	return sessions
}

func (r *repository) Len() int {
	return int(r.loaded.Load())
}

func (r *repository) updateGauge() {
	r.stats.Gauge("loaded").Update(float64(r.loaded.Load()))
}
