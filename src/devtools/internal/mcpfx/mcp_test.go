package mcpfx

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeShutdowner struct {
	mu    sync.Mutex
	calls int
}

func (s *fakeShutdowner) Shutdown(...fx.ShutdownOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}

func (s *fakeShutdowner) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newModule(t *testing.T, transport map[string]interface{}) (*module, *fakeShutdowner) {
	provider, err := config.NewStaticProvider(map[string]interface{}{"transport": transport})
	require.NoError(t, err)
	shutdowner := &fakeShutdowner{}
	m, err := New(Params{
		Config:     provider,
		Lifecycle:  fxtest.NewLifecycle(t),
		Logger:     zap.NewNop().Sugar(),
		Server:     server.NewMCPServer("test", "0.0.0"),
		Shutdowner: shutdowner,
	})
	require.NoError(t, err)
	return m.(*module), shutdowner
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  string
		endpoint string
	}{
		{name: "stdio", cfg: Config{Type: TransportStdio}},
		{name: "sse", cfg: Config{Type: TransportSSE, Address: "127.0.0.1:4000"}, endpoint: "http://127.0.0.1:4000/sse"},
		{name: "http", cfg: Config{Type: TransportHTTP, Address: "localhost:8080"}, endpoint: "http://localhost:8080/mcp"},
		{name: "network without address", cfg: Config{Type: TransportHTTP}, wantErr: `missing field "transport.address"`},
		{name: "unknown type", cfg: Config{Type: "websocket"}, wantErr: `unknown transport type "websocket"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, tt.cfg.Endpoint())
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("missing parameters", func(t *testing.T) {
		_, err := New(Params{})
		assert.Error(t, err)
	})

	t.Run("invalid transport", func(t *testing.T) {
		provider, err := config.NewStaticProvider(map[string]interface{}{
			"transport": map[string]interface{}{"type": "pigeon"},
		})
		require.NoError(t, err)
		_, err = New(Params{
			Config:    provider,
			Lifecycle: fxtest.NewLifecycle(t),
			Logger:    zap.NewNop().Sugar(),
			Server:    server.NewMCPServer("test", "0.0.0"),
		})
		assert.Error(t, err)
	})
}

func TestStdio(t *testing.T) {
	m, shutdowner := newModule(t, map[string]interface{}{"type": "stdio"})
	stdinReader, stdinWriter := io.Pipe()
	stdout := &syncBuffer{}
	m.stdin = stdinReader
	m.stdout = stdout

	require.NoError(t, m.OnStart(context.Background()))
	assert.Empty(t, m.Endpoint())

	_, err := stdinWriter.Write([]byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stdout.String()), []byte(`"id":1`))
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, stdinWriter.Close())
	require.Eventually(t, func() bool { return shutdowner.count() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, m.OnStop(context.Background()))
}

func TestStdioStopBeforeClientCloses(t *testing.T) {
	m, shutdowner := newModule(t, map[string]interface{}{"type": "stdio"})
	stdinReader, stdinWriter := io.Pipe()
	m.stdin = stdinReader
	m.stdout = io.Discard

	require.NoError(t, m.OnStart(context.Background()))
	require.NoError(t, m.OnStop(context.Background()))
	assert.Zero(t, shutdowner.count())

	// Unblocks the pending read.
	require.NoError(t, stdinWriter.Close())
}

func TestNetworkTransports(t *testing.T) {
	for _, transport := range []string{TransportSSE, TransportHTTP} {
		t.Run(transport, func(t *testing.T) {
			m, shutdowner := newModule(t, map[string]interface{}{"type": transport, "address": "127.0.0.1:0"})
			require.NoError(t, m.OnStart(context.Background()))
			require.NoError(t, m.OnStart(context.Background()))
			require.NoError(t, m.OnStop(context.Background()))
			assert.Zero(t, shutdowner.count())
		})
	}
}

func TestNetworkAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	m, _ := newModule(t, map[string]interface{}{"type": TransportHTTP, "address": ln.Addr().String()})
	err = m.OnStart(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
	require.NoError(t, m.OnStop(context.Background()))
}

func TestStopWithoutStart(t *testing.T) {
	m, _ := newModule(t, map[string]interface{}{"type": "stdio"})
	assert.NoError(t, m.OnStop(context.Background()))
}
