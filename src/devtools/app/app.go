package app

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/controller"
	"github.com/uber/devtools-mcp/src/devtools/gateway"
	"github.com/uber/devtools-mcp/src/devtools/handler"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"github.com/uber/devtools-mcp/src/devtools/internal/core"
	"github.com/uber/devtools-mcp/src/devtools/internal/executor"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"github.com/uber/devtools-mcp/src/devtools/internal/mcpfx"
	"github.com/uber/devtools-mcp/src/devtools/repository"
	"go.uber.org/fx"
)

// Module defines the devtools-mcp application module.
var Module = fx.Options(
	gateway.Module,    // outbounds
	repository.Module, // storage
	controller.Module,
	handler.Module, // inbounds
	mcpfx.Module,
	fs.Module,
	executor.Module,
	clock.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "devtools-mcp",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateConfigProvider),
)
