package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/uber/devtools-mcp/src/devtools/controller/registry"
	devtoolsmcp "github.com/uber/devtools-mcp/src/devtools/handler/devtools-mcp"
	"github.com/uber/devtools-mcp/src/devtools/internal/mcpfx"
	registryfile "github.com/uber/devtools-mcp/src/devtools/repository/registry-file"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyTransport = "transport"

// ClientConfig renders the mcpServers entry an MCP client (e.g. Cursor's .cursor/mcp.json) uses to reach the server.
// Network transports are reached by URL. Stdio clients spawn executable with the given serve arguments.
func ClientConfig(transport mcpfx.Config, executable string, serveArgs []string) (string, error) {
	entry := map[string]interface{}{}
	if endpoint := transport.Endpoint(); endpoint != "" {
		entry["url"] = endpoint
	} else {
		entry["command"] = executable
		entry["args"] = append([]string{"serve"}, serveArgs...)
	}

	b, err := json.MarshalIndent(map[string]interface{}{
		"mcpServers": map[string]interface{}{
			devtoolsmcp.ServerName: entry,
		},
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering client config: %w", err)
	}
	return string(b), nil
}

// ConnectionInfoParams are the inputs of outputConnectionInfo.
type ConnectionInfoParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Provider
	Logger    *zap.SugaredLogger
	File      registryfile.Repository
	Registry  registry.Controller
}

// outputConnectionInfo logs where the registry lives and how clients connect, once the persisted projects are loaded.
func outputConnectionInfo(p ConnectionInfoParams) error {
	var transport mcpfx.Config
	if err := p.Config.Get(_configKeyTransport).Populate(&transport); err != nil {
		return fmt.Errorf("loading %s config: %w", _configKeyTransport, err)
	}

	executable, err := os.Executable()
	if err != nil {
		executable = devtoolsmcp.ServerName
	}
	snippet, err := ClientConfig(transport, executable, []string{"--config", p.File.Path()})
	if err != nil {
		return err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Infow("using registry file", "path", p.File.Path())
			p.Logger.Infof("MCP client configuration:\n---\n%s\n---", snippet)
			if len(p.Registry.List()) == 0 {
				p.Logger.Warn("No projects found. Once connected, add one using the 'add_project' tool or the CLI: `rust-devtools-mcp projects add <path>`")
			}
			return nil
		},
	})
	return nil
}
