package controller

import (
	configwatcher "github.com/uber/devtools-mcp/src/devtools/controller/config-watcher"
	"github.com/uber/devtools-mcp/src/devtools/controller/devtools"
	"github.com/uber/devtools-mcp/src/devtools/controller/diagnostics"
	"github.com/uber/devtools-mcp/src/devtools/controller/edits"
	"github.com/uber/devtools-mcp/src/devtools/controller/notifications"
	"github.com/uber/devtools-mcp/src/devtools/controller/registry"
	"github.com/uber/devtools-mcp/src/devtools/controller/symbols"
	"go.uber.org/fx"
)

// Module provides every controller. The registry is loaded before the config watcher starts.
var Module = fx.Options(
	notifications.Module,
	symbols.Module,
	edits.Module,
	diagnostics.Module,
	devtools.Module,
	registry.Module,
	configwatcher.Module,
)
