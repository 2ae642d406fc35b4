package repository

import (
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	registryfile "github.com/uber/devtools-mcp/src/devtools/repository/registry-file"
	"go.uber.org/fx"
)

// Module provides the project store and the persisted registry file.
var Module = fx.Options(
	project.Module,
	registryfile.Module,
)
