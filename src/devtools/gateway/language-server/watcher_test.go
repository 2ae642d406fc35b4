package languageserver

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

type changeRecorder struct {
	mu      sync.Mutex
	batches [][]*protocol.FileEvent
}

func (r *changeRecorder) send(changes []*protocol.FileEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, changes)
}

func (r *changeRecorder) uris() map[uri.URI]protocol.FileChangeType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uri.URI]protocol.FileChangeType)
	for _, batch := range r.batches {
		for _, c := range batch {
			out[c.URI] = c.Type
		}
	}
	return out
}

func TestChangeNotifier(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"src", "target", ".git"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	recorder := &changeRecorder{}
	n, err := newChangeNotifier(root, testConfig(), clock.New(), zap.NewNop().Sugar(), recorder.send)
	require.NoError(t, err)
	defer n.Close()

	libRs := filepath.Join(root, "src", "lib.rs")
	require.NoError(t, os.WriteFile(filepath.Join(root, "target", "gen.rs"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD.rs"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(libRs, []byte("fn a() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]"), 0o644))

	require.Eventually(t, func() bool {
		uris := recorder.uris()
		_, lib := uris[uri.File(libRs)]
		_, manifest := uris[uri.File(filepath.Join(root, "Cargo.toml"))]
		return lib && manifest
	}, 5*time.Second, 10*time.Millisecond)

	uris := recorder.uris()
	assert.NotContains(t, uris, uri.File(filepath.Join(root, "target", "gen.rs")))
	assert.NotContains(t, uris, uri.File(filepath.Join(root, ".git", "HEAD.rs")))
	assert.NotContains(t, uris, uri.File(filepath.Join(root, "src", "notes.txt")))

	require.NoError(t, os.Remove(libRs))
	require.Eventually(t, func() bool {
		return recorder.uris()[uri.File(libRs)] == protocol.FileChangeTypeDeleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestChangeNotifierNewDirectory(t *testing.T) {
	root := t.TempDir()
	recorder := &changeRecorder{}
	n, err := newChangeNotifier(root, testConfig(), clock.New(), zap.NewNop().Sugar(), recorder.send)
	require.NoError(t, err)
	defer n.Close()

	sub := filepath.Join(root, "crates", "core")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "lib.rs")

	require.Eventually(t, func() bool {
		// Rewrite until the new directory is watched.
		_ = os.WriteFile(file, []byte("fn a() {}"), 0o644)
		_, ok := recorder.uris()[uri.File(file)]
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestChangeNotifierMissingRoot(t *testing.T) {
	_, err := newChangeNotifier(filepath.Join(t.TempDir(), "missing"), testConfig(), clock.New(), zap.NewNop().Sugar(), func([]*protocol.FileEvent) {})
	assert.Error(t, err)
}

func TestChangeNotifierCloseDropsPending(t *testing.T) {
	root := t.TempDir()
	recorder := &changeRecorder{}
	cfg := testConfig()
	cfg.WatchDebounce = time.Hour
	n, err := newChangeNotifier(root, cfg, clock.New(), zap.NewNop().Sugar(), recorder.send)
	require.NoError(t, err)

	n.record(uri.File(filepath.Join(root, "a.rs")), protocol.FileChangeTypeChanged)
	require.NoError(t, n.Close())
	n.flush()
	assert.Empty(t, recorder.uris())
}
