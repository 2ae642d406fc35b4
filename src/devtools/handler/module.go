package handler

import (
	"github.com/mark3labs/mcp-go/server"
	mcpclient "github.com/uber/devtools-mcp/src/devtools/gateway/mcp-client"
	devtoolsmcp "github.com/uber/devtools-mcp/src/devtools/handler/devtools-mcp"
	"github.com/uber/devtools-mcp/src/devtools/internal/mcpfx"
	"go.uber.org/fx"
)

// Module provides the MCP server and its tools into an Fx application.
var Module = fx.Options(
	fx.Provide(devtoolsmcp.NewServer),
	fx.Provide(func(s *server.MCPServer) mcpclient.Sender { return s }),
	fx.Provide(devtoolsmcp.New),
	fx.Invoke(func(h devtoolsmcp.Handler) {}),
	fx.Invoke(func(m mcpfx.MCPModule) {}),
	fx.Invoke(outputConnectionInfo),
)
