// Package configwatcher reloads the project registry when its file changes on disk.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber/devtools-mcp/src/devtools/controller/registry"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	registryfile "github.com/uber/devtools-mcp/src/devtools/repository/registry-file"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKey             = "registry"
	_defaultReloadDebounce = time.Second
)

// Module starts the watcher with the application, after the registry has loaded.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, w Watcher) {
		lc.Append(fx.Hook{OnStart: w.Start, OnStop: w.Stop})
	}),
)

// Watcher watches the registry file.
type Watcher interface {
	// Start begins watching. A directory that cannot be watched disables hot reload with a warning.
	Start(ctx context.Context) error
	// Stop ends watching and waits for an in-flight reload.
	Stop(ctx context.Context) error
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	File     registryfile.Repository
	Registry registry.Controller
	Clock    clock.Clock
}

type watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.SugaredLogger
	registry registry.Controller
	clock    clock.Clock

	// reload holds at most one queued reload; triggers arriving while one is queued coalesce.
	reload chan struct{}

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   clock.Timer
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a watcher of the registry file.
func New(p Params) (Watcher, error) {
	var cfg registryfile.Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, err
	}
	return newWatcher(p.File.Path(), cfg.ReloadDebounce, p.Logger, p.Registry, p.Clock), nil
}

func newWatcher(path string, debounce time.Duration, logger *zap.SugaredLogger, r registry.Controller, clk clock.Clock) *watcher {
	if debounce <= 0 {
		debounce = _defaultReloadDebounce
	}
	return &watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger.With("component", "config-watcher"),
		registry: r,
		clock:    clk,
		reload:   make(chan struct{}, 1),
	}
}

func (w *watcher) Start(_ context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warnw("hot reload disabled", "error", err)
		return nil
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		w.logger.Warnw("hot reload disabled, cannot watch registry directory", "dir", dir, "error", err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.mu.Lock()
	w.fsw = fsw
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(2)
	go w.watch(fsw)
	go w.consume(ctx)
	w.logger.Infow("watching registry file", "path", w.path)
	return nil
}

func (w *watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped || w.fsw == nil {
		w.stopped = true
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.cancel()
	err := w.fsw.Close()
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *watcher) watch(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.logger.Debugw("registry file event", "op", event.Op.String())
				w.schedule()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorw("registry file watch error", "error", err)
		}
	}
}

// relevant reports whether event touches the registry file itself.
func (w *watcher) relevant(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.path && event.Op&^fsnotify.Chmod != 0
}

// schedule restarts the quiet window after which a reload is queued.
func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer == nil {
		w.timer = w.clock.AfterFunc(w.debounce, w.trigger)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *watcher) trigger() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *watcher) consume(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.reload:
			w.logger.Info("Registry file changed, reloading projects")
			if err := w.registry.Load(ctx); err != nil {
				w.logger.Errorw("registry hot reload failed", "error", err)
				continue
			}
			w.logger.Info("Registry hot reload completed")
		}
	}
}
