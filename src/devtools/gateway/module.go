package gateway

import (
	buildtool "github.com/uber/devtools-mcp/src/devtools/gateway/build-tool"
	languageserver "github.com/uber/devtools-mcp/src/devtools/gateway/language-server"
	mcpclient "github.com/uber/devtools-mcp/src/devtools/gateway/mcp-client"
	"go.uber.org/fx"
)

// Module provides the outbound gateways: subprocesses and connected MCP clients.
var Module = fx.Options(
	languageserver.Module,
	buildtool.Module,
	mcpclient.Module,
)
