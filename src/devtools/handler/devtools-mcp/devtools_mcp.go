// Package devtoolsmcp implements the MCP tools and prompts of the devtools service.
package devtoolsmcp

import (
	"context"
	stderr "errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/controller/devtools"
	"github.com/uber/devtools-mcp/src/devtools/controller/diagnostics"
	"github.com/uber/devtools-mcp/src/devtools/controller/notifications"
	"github.com/uber/devtools-mcp/src/devtools/controller/registry"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// ServerName is the implementation name reported to MCP clients.
	ServerName = "rust-devtools-mcp"

	_resultSuccess = "success"
	_resultError   = "error"

	// _maxPayloadRunes bounds the result text mirrored onto the notification bus.
	_maxPayloadRunes = 300
)

// Version is reported to MCP clients. It is set at build time.
var Version = "0.3.0"

// NewServer creates the MCP server the tools are registered on.
func NewServer() *server.MCPServer {
	return server.NewMCPServer(ServerName, Version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithInstructions(GuidancePrompt),
	)
}

// Handler represents the MCP API of the devtools service.
type Handler interface {
	// Tools returns every tool served, wrapped with instrumentation.
	Tools() []server.ServerTool
	// Prompts returns every prompt served.
	Prompts() []server.ServerPrompt
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger      *zap.SugaredLogger
	Server      *server.MCPServer
	Registry    registry.Controller
	Devtools    devtools.Controller
	Diagnostics diagnostics.Controller
	Bus         notifications.Bus
	Stats       tally.Scope
}

type handler struct {
	logger      *zap.SugaredLogger
	registry    registry.Controller
	devtools    devtools.Controller
	diagnostics diagnostics.Controller
	bus         notifications.Bus
	stats       tally.Scope
}

// New constructs the handler and registers its tools and prompts on the server.
func New(p Params) Handler {
	h := &handler{
		logger:      p.Logger.With("component", "mcp-handler"),
		registry:    p.Registry,
		devtools:    p.Devtools,
		diagnostics: p.Diagnostics,
		bus:         p.Bus,
		stats:       p.Stats.SubScope("tools"),
	}
	p.Server.AddTools(h.Tools()...)
	p.Server.AddPrompts(h.Prompts()...)
	return h
}

// toolFunc runs a tool. root is the project the call concerns, or "" when it is unknown.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (root string, result *mcp.CallToolResult, err error)

func (h *handler) Tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: addProjectTool, Handler: h.instrument(addProjectTool.Name, h.addProject)},
		{Tool: removeProjectTool, Handler: h.instrument(removeProjectTool.Name, h.removeProject)},
		{Tool: listProjectsTool, Handler: h.instrument(listProjectsTool.Name, h.listProjects)},
		{Tool: symbolInfoTool, Handler: h.instrument(symbolInfoTool.Name, h.symbolInfo)},
		{Tool: symbolUsagesTool, Handler: h.instrument(symbolUsagesTool.Name, h.symbolUsages)},
		{Tool: checkProjectTool, Handler: h.instrument(checkProjectTool.Name, h.checkProject)},
		{Tool: diagnosticsTool, Handler: h.instrument(diagnosticsTool.Name, h.diagnosticsWithFixes)},
		{Tool: renameSymbolTool, Handler: h.instrument(renameSymbolTool.Name, h.renameSymbol)},
		{Tool: applyEditTool, Handler: h.instrument(applyEditTool.Name, h.applyWorkspaceEdit)},
		{Tool: testProjectTool, Handler: h.instrument(testProjectTool.Name, h.testProject)},
	}
}

// instrument turns errors into error results, records metrics and mirrors the call onto the bus.
func (h *handler) instrument(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		root, result, err := fn(ctx, req)
		if err != nil {
			h.logger.Infow("tool call failed", "tool", name, "root", root, "error", err)
			result = errorResult(name, err)
		}

		status := _resultSuccess
		if result.IsError {
			status = _resultError
		}
		h.stats.Tagged(map[string]string{"tool": name, "result": status}).Counter("calls").Inc(1)
		h.stats.Tagged(map[string]string{"tool": name}).Timer("latency").Record(time.Since(start))

		if root != "" {
			h.bus.Publish(entity.ToolInvocation{
				Root:    root,
				Tool:    name,
				Success: !result.IsError,
				Payload: truncate(resultText(result), _maxPayloadRunes),
			})
		}
		return result, nil
	}
}

// errorResult renders err for the caller. Unknown projects point the caller at list_projects.
func errorResult(tool string, err error) *mcp.CallToolResult {
	var notFound *errors.NotFoundError
	if stderr.As(err, &notFound) && notFound.Kind == "project" {
		return mcp.NewToolResultError(fmt.Sprintf("Project '%s' not found. Use 'list_projects' to see available projects.", notFound.Name))
	}
	if errors.IsBadRequest(err) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultErrorFromErr(fmt.Sprintf("%s failed", tool), err)
}

// findProject resolves the project named by the project_name argument.
func (h *handler) findProject(req mcp.CallToolRequest) (*project.Session, error) {
	identifier := req.GetString(_argProjectName, "")
	if identifier == "" {
		return nil, errors.ErrNoProjectIdentifier
	}
	return h.registry.Find(identifier)
}

// textResult returns a successful result with one text content per entry.
func textResult(texts ...string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, mcp.NewTextContent(t))
	}
	return &mcp.CallToolResult{Content: content}
}

func resultText(result *mcp.CallToolResult) string {
	texts := make([]string, 0, len(result.Content))
	for _, c := range result.Content {
		if t, ok := mcp.AsTextContent(c); ok {
			texts = append(texts, t.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
