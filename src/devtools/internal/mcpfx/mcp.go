// Package mcpfx serves the MCP server over the configured transport for the lifetime of the application.
package mcpfx

import (
	"context"
	stderr "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKey = "transport"

	// TransportStdio serves a single client over standard input and output.
	TransportStdio = "stdio"
	// TransportSSE serves clients over server-sent events.
	TransportSSE = "sse"
	// TransportHTTP serves clients over streamable HTTP.
	TransportHTTP = "http"

	_ssePath  = "/sse"
	_httpPath = "/mcp"
)

// Module is an fx module serving the MCP server.
var Module = fx.Provide(New)

// Config is the transport block of the application config.
type Config struct {
	Type    string `yaml:"type"`
	Address string `yaml:"address"`
}

// Validate reports an unknown transport type or a network transport without an address.
func (c Config) Validate() error {
	switch c.Type {
	case TransportStdio:
		return nil
	case TransportSSE, TransportHTTP:
		if c.Address == "" {
			return fmt.Errorf("missing field %q in config", _configKey+".address")
		}
		return nil
	default:
		return fmt.Errorf("unknown transport type %q, expected one of %s, %s, %s", c.Type, TransportStdio, TransportSSE, TransportHTTP)
	}
}

// Endpoint returns the URL network clients connect to, or "" for stdio.
func (c Config) Endpoint() string {
	switch c.Type {
	case TransportSSE:
		return "http://" + c.Address + _ssePath
	case TransportHTTP:
		return "http://" + c.Address + _httpPath
	default:
		return ""
	}
}

// MCPModule serves the MCP server.
type MCPModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	// Endpoint returns the URL clients connect to, or "" for stdio.
	Endpoint() string
}

// Params define values to be used by the transport.
type Params struct {
	fx.In

	Config     config.Provider
	Lifecycle  fx.Lifecycle
	Logger     *zap.SugaredLogger
	Server     *server.MCPServer
	Shutdowner fx.Shutdowner
}

type module struct {
	cfg        Config
	logger     *zap.SugaredLogger
	server     *server.MCPServer
	shutdowner fx.Shutdowner

	stdin  io.Reader
	stdout io.Writer

	mu       sync.Mutex
	cancel   context.CancelFunc
	shutdown func(ctx context.Context) error
	done     chan struct{}
}

// New creates the transport and ties it to the lifecycle.
func New(p Params) (MCPModule, error) {
	if p.Lifecycle == nil || p.Config == nil || p.Server == nil {
		return nil, stderr.New("required parameters are missing")
	}

	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &module{
		cfg:        cfg,
		logger:     p.Logger.With("component", "transport", "type", cfg.Type),
		server:     p.Server,
		shutdowner: p.Shutdowner,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})
	return m, nil
}

func (m *module) Endpoint() string {
	return m.cfg.Endpoint()
}

// OnStart binds the transport and begins serving in the background.
func (m *module) OnStart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return nil
	}

	switch m.cfg.Type {
	case TransportStdio:
		serveCtx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		m.done = make(chan struct{})
		go m.serveStdio(serveCtx)
		return nil
	default:
		ln, err := net.Listen("tcp", m.cfg.Address)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", m.cfg.Address, err)
		}
		srv := &http.Server{Addr: m.cfg.Address}
		m.shutdown = m.networkServer(srv)
		m.done = make(chan struct{})
		go m.serveNetwork(srv, ln)
		return nil
	}
}

// networkServer attaches the MCP transport for the configured type to srv and returns its shutdown function.
func (m *module) networkServer(srv *http.Server) func(ctx context.Context) error {
	if m.cfg.Type == TransportSSE {
		sse := server.NewSSEServer(m.server,
			server.WithHTTPServer(srv),
			server.WithBaseURL("http://"+m.cfg.Address),
			server.WithSSEEndpoint(_ssePath),
		)
		srv.Handler = sse
		return sse.Shutdown
	}
	streamable := server.NewStreamableHTTPServer(m.server,
		server.WithStreamableHTTPServer(srv),
		server.WithEndpointPath(_httpPath),
	)
	mux := http.NewServeMux()
	mux.Handle(_httpPath, streamable)
	srv.Handler = mux
	return streamable.Shutdown
}

func (m *module) serveNetwork(srv *http.Server, ln net.Listener) {
	defer close(m.done)
	m.logger.Infow("started MCP inbound", "endpoint", m.Endpoint())
	if err := srv.Serve(ln); err != nil && !stderr.Is(err, http.ErrServerClosed) {
		m.logger.Errorw("MCP inbound stopped", "error", err)
		m.requestShutdown()
	}
}

// serveStdio serves the single stdio client. The application stops when the client closes its end.
func (m *module) serveStdio(ctx context.Context) {
	defer close(m.done)
	stdio := server.NewStdioServer(m.server)
	stdio.SetErrorLogger(zap.NewStdLog(m.logger.Desugar()))

	m.logger.Info("started MCP inbound on stdio")
	err := stdio.Listen(ctx, m.stdin, m.stdout)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Errorw("MCP stdio inbound stopped", "error", err)
	} else {
		m.logger.Info("MCP client closed stdin")
	}
	m.requestShutdown()
}

func (m *module) requestShutdown() {
	if m.shutdowner == nil {
		return
	}
	if err := m.shutdowner.Shutdown(); err != nil {
		m.logger.Warnw("requesting application shutdown", "error", err)
	}
}

// OnStop stops serving and waits for the serving goroutine.
func (m *module) OnStop(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	cancel := m.cancel
	shutdown := m.shutdown
	m.mu.Unlock()
	if done == nil {
		return nil
	}

	var err error
	if cancel != nil {
		cancel()
	}
	if shutdown != nil {
		err = shutdown(ctx)
	}

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
