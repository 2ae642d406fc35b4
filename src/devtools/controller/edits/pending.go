package edits

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gofrs/uuid"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKey = "edits"

var errTooManyPending = errors.New("too many pending edits, apply or discard some first")

// Config is the edits block of the application config.
type Config struct {
	PendingTTL time.Duration `yaml:"pendingTTL"`
	MaxPending int64         `yaml:"maxPending"`
}

// Store holds previewed edits until they are applied or expire.
type Store interface {
	// Put previews edit and stores it under a new ID.
	Put(root string, description string, edit protocol.WorkspaceEdit) (entity.PendingEdit, error)
	// Take removes and returns the pending edit with the given ID.
	Take(id string) (entity.PendingEdit, error)
}

// StoreParams are the inputs of NewStore.
type StoreParams struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Applier   Applier
	Clock     clock.Clock
}

type store struct {
	cfg     Config
	logger  *zap.SugaredLogger
	applier Applier
	clock   clock.Clock

	// mu makes Take atomic over the cache's separate get and delete.
	mu    sync.Mutex
	cache *ristretto.Cache[string, entity.PendingEdit]
}

// NewStore creates a Store whose entries expire after the configured TTL.
func NewStore(p StoreParams) (Store, error) {
	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("reading %s config: %w", _configKey, err)
	}
	s, err := newStore(cfg, p.Logger, p.Applier, p.Clock)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.cache.Close()
			return nil
		},
	})
	return s, nil
}

func newStore(cfg Config, logger *zap.SugaredLogger, applier Applier, clk clock.Clock) (*store, error) {
	if cfg.PendingTTL <= 0 {
		return nil, errors.New("edits.pendingTTL must be positive")
	}
	if cfg.MaxPending <= 0 {
		return nil, errors.New("edits.maxPending must be positive")
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, entity.PendingEdit]{
		NumCounters:        cfg.MaxPending * 10,
		MaxCost:            cfg.MaxPending,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pending edit cache: %w", err)
	}
	return &store{
		cfg:     cfg,
		logger:  logger.With("component", "pending-edits"),
		applier: applier,
		clock:   clk,
		cache:   cache,
	}, nil
}

func (s *store) Put(root string, description string, edit protocol.WorkspaceEdit) (entity.PendingEdit, error) {
	diff, err := s.applier.Preview(edit)
	if err != nil {
		return entity.PendingEdit{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return entity.PendingEdit{}, fmt.Errorf("generating edit id: %w", err)
	}

	pending := entity.PendingEdit{
		ID:          id.String(),
		Root:        root,
		Description: description,
		Edit:        edit,
		Diff:        diff,
		CreatedAt:   s.clock.Now(),
	}
	// Admission is decided asynchronously, so a buffered set can still be rejected once the store is full.
	if !s.cache.SetWithTTL(pending.ID, pending, 1, s.cfg.PendingTTL) {
		return entity.PendingEdit{}, errTooManyPending
	}
	s.cache.Wait()
	if _, ok := s.cache.Get(pending.ID); !ok {
		return entity.PendingEdit{}, errTooManyPending
	}
	s.logger.Debugw("stored pending edit", "id", pending.ID, "root", root)
	return pending, nil
}

func (s *store) Take(id string) (entity.PendingEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.cache.Get(id)
	if !ok {
		return entity.PendingEdit{}, &errors.NotFoundError{Kind: "pending edit", Name: id}
	}
	s.cache.Del(id)
	return pending, nil
}
