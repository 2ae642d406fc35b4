package languageserver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// changeNotifier watches the directories of a project and reports source changes to the server in debounced batches.
type changeNotifier struct {
	cfg     Config
	clock   clock.Clock
	logger  *zap.SugaredLogger
	watcher *fsnotify.Watcher
	send    func([]*protocol.FileEvent)

	mu      sync.Mutex
	pending map[uri.URI]protocol.FileChangeType
	timer   clock.Timer
	closed  bool

	done chan struct{}
}

func newChangeNotifier(root string, cfg Config, clk clock.Clock, logger *zap.SugaredLogger, send func([]*protocol.FileEvent)) (*changeNotifier, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	n := &changeNotifier{
		cfg:     cfg,
		clock:   clk,
		logger:  logger,
		watcher: watcher,
		send:    send,
		pending: make(map[uri.URI]protocol.FileChangeType),
		done:    make(chan struct{}),
	}
	if err := n.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}
	go n.run()
	return n, nil
}

// addTree watches dir and every directory below it that is not skipped.
func (n *changeNotifier) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && n.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return n.watcher.Add(path)
	})
}

func (n *changeNotifier) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, skip := range n.cfg.WatchSkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

func (n *changeNotifier) relevant(path string) bool {
	base := filepath.Base(path)
	for _, name := range n.cfg.WatchFiles {
		if base == name {
			return true
		}
	}
	ext := filepath.Ext(path)
	for _, e := range n.cfg.WatchExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (n *changeNotifier) run() {
	defer close(n.done)
	for {
		select {
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			n.handle(event)
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			n.logger.Warnw("file watcher error", "error", err)
		}
	}
}

func (n *changeNotifier) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !n.skipDir(info.Name()) {
				if err := n.addTree(event.Name); err != nil {
					n.logger.Debugw("watching new directory", "path", event.Name, "error", err)
				}
			}
			return
		}
	}
	if !n.relevant(event.Name) {
		return
	}

	var changeType protocol.FileChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = protocol.FileChangeTypeCreated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = protocol.FileChangeTypeDeleted
	case event.Has(fsnotify.Write):
		changeType = protocol.FileChangeTypeChanged
	default:
		return
	}
	n.record(uri.File(event.Name), changeType)
}

// record merges a change into the pending batch and restarts the quiet window.
func (n *changeNotifier) record(u uri.URI, changeType protocol.FileChangeType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	// A file created within the window stays created when it is then written to.
	if prev, ok := n.pending[u]; !(ok && prev == protocol.FileChangeTypeCreated && changeType == protocol.FileChangeTypeChanged) {
		n.pending[u] = changeType
	}
	if n.timer == nil {
		n.timer = n.clock.AfterFunc(n.cfg.WatchDebounce, n.flush)
		return
	}
	n.timer.Reset(n.cfg.WatchDebounce)
}

func (n *changeNotifier) flush() {
	n.mu.Lock()
	if n.closed || len(n.pending) == 0 {
		n.mu.Unlock()
		return
	}
	changes := make([]*protocol.FileEvent, 0, len(n.pending))
	for u, changeType := range n.pending {
		changes = append(changes, &protocol.FileEvent{URI: u, Type: changeType})
	}
	n.pending = make(map[uri.URI]protocol.FileChangeType)
	n.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].URI < changes[j].URI })
	n.send(changes)
}

// Close stops watching and drops any pending batch.
func (n *changeNotifier) Close() error {
	n.mu.Lock()
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
	}
	n.mu.Unlock()

	err := n.watcher.Close()
	<-n.done
	return err
}
