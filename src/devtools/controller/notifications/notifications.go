// Package notifications fans in events from language server sessions and tool calls into a single outbound stream.
package notifications

import (
	"context"
	"sync"

	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _outboundBuffer = 256

// Module provides the notification bus.
var Module = fx.Provide(New)

// Bus merges every notification source into one ordered outbound channel.
// Events of a single source keep their order. Events of different sources interleave freely.
type Bus interface {
	// Attach adds a source. The source is drained until it is closed.
	Attach(source <-chan entity.Notification)
	// Publish sends a notification from a tool call. It is dropped once the bus is stopping.
	Publish(n entity.Notification)
	// Outbound is the merged stream. It is closed after the bus stops.
	Outbound() <-chan entity.Notification
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Projects  project.Repository
	Stats     tally.Scope
}

type bus struct {
	logger   *zap.SugaredLogger
	projects project.Repository

	in       chan entity.Notification
	outbound chan entity.Notification
	stopping chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	stopped bool
	sources sync.WaitGroup

	forwarded tally.Counter
	dropped   tally.Counter
}

// New creates the bus and starts its consumer loop. The loop ends once the bus is stopping and every attached source is closed.
func New(p Params) Bus {
	b := newBus(p.Logger, p.Projects, p.Stats)
	go b.run()

	p.Lifecycle.Append(fx.Hook{
		OnStop: b.stop,
	})
	return b
}

func newBus(logger *zap.SugaredLogger, projects project.Repository, stats tally.Scope) *bus {
	scope := stats.SubScope("notifications")
	return &bus{
		logger:    logger.With("component", "notifications"),
		projects:  projects,
		in:        make(chan entity.Notification),
		outbound:  make(chan entity.Notification, _outboundBuffer),
		stopping:  make(chan struct{}),
		done:      make(chan struct{}),
		forwarded: scope.Counter("forwarded"),
		dropped:   scope.Counter("dropped"),
	}
}

func (b *bus) Attach(source <-chan entity.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		b.logger.Warn("Bus is stopping, discarding the events of a new source")
		go func() {
			for range source {
				b.dropped.Inc(1)
			}
		}()
		return
	}

	b.sources.Add(1)
	go func() {
		defer b.sources.Done()
		for n := range source {
			b.in <- n
		}
	}()
}

func (b *bus) Publish(n entity.Notification) {
	select {
	case <-b.stopping:
		b.logger.Debugw("Bus is stopping, dropping notification", "path", n.RoutingPath())
		b.dropped.Inc(1)
	default:
		select {
		case b.in <- n:
		case <-b.stopping:
			b.dropped.Inc(1)
		}
	}
}

func (b *bus) Outbound() <-chan entity.Notification {
	return b.outbound
}

func (b *bus) run() {
	defer close(b.done)
	defer close(b.outbound)

	sourcesClosed := make(chan struct{})
	go func() {
		<-b.stopping
		b.sources.Wait()
		close(sourcesClosed)
	}()

	for {
		select {
		case n := <-b.in:
			b.handle(n)
		case <-sourcesClosed:
			return
		}
	}
}

func (b *bus) handle(n entity.Notification) {
	if update, ok := n.(entity.IndexingUpdate); ok {
		if s, ok := b.projects.Get(update.Root); ok {
			s.SetIndexing(update.IsIndexing)
		}
	}

	select {
	case b.outbound <- n:
		b.forwarded.Inc(1)
	default:
		b.logger.Warnw("No receiver for notification, dropping it", "path", n.RoutingPath(), "description", n.Description())
		b.dropped.Inc(1)
	}
}

// stop waits for the attached sources to close. Sessions close their sources when they shut down.
func (b *bus) stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.stopped {
		b.stopped = true
		close(b.stopping)
	}
	b.mu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
