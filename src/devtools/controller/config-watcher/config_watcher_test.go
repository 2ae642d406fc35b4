package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/devtools-mcp/src/devtools/controller/registry/registrymock"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"github.com/uber/devtools-mcp/src/devtools/repository/registry-file/registryfilemock"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTimer struct {
	resets int
}

func (t *fakeTimer) Stop() bool                 { return true }
func (t *fakeTimer) Reset(_ time.Duration) bool { t.resets++; return true }

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
	funcs  []func()
}

func (c *fakeClock) Now() time.Time { return time.Time{} }

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{}
	c.timers = append(c.timers, timer)
	c.funcs = append(c.funcs, f)
	return timer
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	file := registryfilemock.NewMockRepository(ctrl)
	file.EXPECT().Path().Return("/home/dev/.rust-devtools-mcp.toml")

	provider, err := config.NewStaticProvider(map[string]interface{}{
		"registry": map[string]interface{}{"reloadDebounce": "5ms"},
	})
	require.NoError(t, err)

	w, err := New(Params{
		Config:   provider,
		Logger:   zap.NewNop().Sugar(),
		File:     file,
		Registry: registrymock.NewMockController(ctrl),
		Clock:    clock.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, w.(*watcher).debounce)
	assert.Equal(t, "/home/dev/.rust-devtools-mcp.toml", w.(*watcher).path)
}

func TestNewDefaultsDebounce(t *testing.T) {
	w := newWatcher("/tmp/registry.toml", 0, zap.NewNop().Sugar(), nil, clock.New())
	assert.Equal(t, _defaultReloadDebounce, w.debounce)
}

func TestRelevant(t *testing.T) {
	w := newWatcher("/home/dev/registry.toml", time.Second, zap.NewNop().Sugar(), nil, clock.New())

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write", event: fsnotify.Event{Name: "/home/dev/registry.toml", Op: fsnotify.Write}, want: true},
		{name: "create", event: fsnotify.Event{Name: "/home/dev/registry.toml", Op: fsnotify.Create}, want: true},
		{name: "remove", event: fsnotify.Event{Name: "/home/dev/registry.toml", Op: fsnotify.Remove}, want: true},
		{name: "unclean name", event: fsnotify.Event{Name: "/home/dev/./registry.toml", Op: fsnotify.Write}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/home/dev/registry.toml", Op: fsnotify.Chmod}},
		{name: "sibling", event: fsnotify.Event{Name: "/home/dev/registry.toml.swp", Op: fsnotify.Write}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestScheduleDebounces(t *testing.T) {
	clk := &fakeClock{}
	w := newWatcher("/tmp/registry.toml", time.Second, zap.NewNop().Sugar(), nil, clk)

	w.schedule()
	w.schedule()
	w.schedule()
	require.Len(t, clk.timers, 1)
	assert.Equal(t, 2, clk.timers[0].resets)

	clk.funcs[0]()
	clk.funcs[0]()
	assert.Len(t, w.reload, 1, "queued reloads coalesce")
}

func TestReloadOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.toml")

	loaded := make(chan struct{}, 1)
	r := registrymock.NewMockController(ctrl)
	r.EXPECT().Load(gomock.Any()).DoAndReturn(func(context.Context) error {
		select {
		case loaded <- struct{}{}:
		default:
		}
		return nil
	}).MinTimes(1)

	w := newWatcher(path, 10*time.Millisecond, zap.NewNop().Sugar(), r, clock.New())
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[projects]\n"), 0o644))

	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("registry was not reloaded")
	}
	require.NoError(t, w.Stop(context.Background()))
}

func TestReloadFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.toml")
	core, logs := observer.New(zap.InfoLevel)

	r := registrymock.NewMockController(ctrl)
	r.EXPECT().Load(gomock.Any()).Return(assert.AnError).MinTimes(1)

	w := newWatcher(path, 10*time.Millisecond, zap.New(core).Sugar(), r, clock.New())
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, os.WriteFile(path, []byte("[projects]\n"), 0o644))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("registry hot reload failed").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Stop(context.Background()))
}

func TestStartWithoutDirectory(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := newWatcher(filepath.Join(t.TempDir(), "missing", "registry.toml"), time.Second, zap.New(core).Sugar(), nil, clock.New())

	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("hot reload disabled, cannot watch registry directory").Len())
	require.NoError(t, w.Stop(context.Background()))
	require.NoError(t, w.Stop(context.Background()))
}

func TestStopIsIdempotent(t *testing.T) {
	w := newWatcher(filepath.Join(t.TempDir(), "registry.toml"), time.Second, zap.NewNop().Sugar(), nil, clock.New())
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop(context.Background()))
	require.NoError(t, w.Stop(context.Background()))

	w.schedule()
	assert.Nil(t, w.timer)
}
