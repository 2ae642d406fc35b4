package main

import (
	"os"
	"time"

	"github.com/uber/devtools-mcp/src/devtools/app"
	"github.com/uber/devtools-mcp/src/devtools/internal/core"
	"go.uber.org/fx"
)

// _startTimeout covers the language server handshakes of every persisted project.
const _startTimeout = 2 * time.Minute

func opts(overrides core.Overrides) fx.Option {
	return fx.Options(
		app.Module,
		fx.Supply(overrides),
		fx.StartTimeout(_startTimeout),
	)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
