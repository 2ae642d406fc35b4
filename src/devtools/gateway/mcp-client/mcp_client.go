// Package mcpclient forwards bus notifications to the connected MCP clients.
package mcpclient

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/go-homedir"
	"github.com/uber/devtools-mcp/src/devtools/controller/notifications"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MethodMessage is the MCP logging notification method.
const MethodMessage = "notifications/message"

// Module provides the gateway and runs its forwarding loop with the application.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, g Gateway) {
		lc.Append(fx.Hook{OnStart: g.Start, OnStop: g.Stop})
	}),
)

// Sender broadcasts a notification to every initialized client session. *server.MCPServer implements it.
type Sender interface {
	SendNotificationToAllClients(method string, params map[string]any)
}

// Gateway is used to send outbound notifications to MCP clients.
type Gateway interface {
	// Notify sends n to every connected client as a logging message.
	Notify(n entity.Notification)
	// Start forwards the bus output until Stop.
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
	Bus    notifications.Bus
	Sender Sender
}

type gateway struct {
	logger *zap.SugaredLogger
	bus    notifications.Bus
	sender Sender
	home   string

	mu      sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

// New returns a Gateway that sends through sender.
func New(p Params) Gateway {
	home, err := homedir.Dir()
	if err != nil {
		home = ""
	}
	return &gateway{
		logger: p.Logger.With("component", "mcp-client"),
		bus:    p.Bus,
		sender: p.Sender,
		home:   home,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (g *gateway) Notify(n entity.Notification) {
	path := n.RoutingPath()
	description := n.Description()
	level := Level(n)

	if level == mcp.LoggingLevelDebug {
		g.logger.Debugw(description, "project", g.displayPath(path))
	} else {
		g.logger.Infow(description, "project", g.displayPath(path))
	}

	g.sender.SendNotificationToAllClients(MethodMessage, map[string]any{
		"level":  level,
		"logger": path,
		"data":   description,
	})
}

func (g *gateway) Start(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started || g.stopped {
		return nil
	}
	g.started = true
	go g.forward(g.bus.Outbound())
	return nil
}

func (g *gateway) forward(outbound <-chan entity.Notification) {
	defer close(g.done)
	for {
		select {
		case <-g.stop:
			return
		case n, ok := <-outbound:
			if !ok {
				return
			}
			g.Notify(n)
		}
	}
}

func (g *gateway) Stop(ctx context.Context) error {
	g.mu.Lock()
	started := g.started
	if !g.stopped {
		g.stopped = true
		close(g.stop)
	}
	g.mu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Level maps a notification to the MCP logging level it is sent with.
func Level(n entity.Notification) mcp.LoggingLevel {
	switch n := n.(type) {
	case entity.ToolInvocation:
		if !n.Success {
			return mcp.LoggingLevelWarning
		}
	case entity.IndexingUpdate:
		// Progress reports arrive many times a second while a stage runs.
		if n.IsIndexing && n.Progress != nil {
			return mcp.LoggingLevelDebug
		}
	}
	return mcp.LoggingLevelInfo
}

// displayPath shortens paths under the home directory to start with ~.
func (g *gateway) displayPath(path string) string {
	if g.home == "" || !filepath.IsAbs(path) {
		return path
	}
	if path == g.home {
		return "~"
	}
	if rel, ok := strings.CutPrefix(path, g.home+string(filepath.Separator)); ok {
		return filepath.Join("~", rel)
	}
	return path
}
