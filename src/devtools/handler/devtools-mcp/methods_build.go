package devtoolsmcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	_argTestName  = "test_name"
	_argBacktrace = "backtrace"
)

var (
	checkProjectTool = mcp.NewTool("check_project",
		mcp.WithDescription("Runs `cargo check` and returns a human-readable list of errors and warnings. For programmatic access to fixes, use the more powerful `get_diagnostics_with_fixes` tool."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	diagnosticsTool = mcp.NewTool("get_diagnostics_with_fixes",
		mcp.WithDescription("Checks the project for errors/warnings and automatically finds available quick fixes for each. This is the primary tool for identifying and fixing problems."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	testProjectTool = mcp.NewTool("test_project",
		mcp.WithDescription("Runs `cargo test` on a project. Can run all tests or a specific one."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithString(_argTestName, mcp.Description("Only run tests whose name contains this filter.")),
		mcp.WithBoolean(_argBacktrace, mcp.Description("Print full backtraces of panicking tests.")),
	)
)

func (h *handler) checkProject(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root

	rendered, err := h.diagnostics.Check(ctx, s)
	if err != nil {
		return root, nil, err
	}
	if len(rendered) == 0 {
		return root, mcp.NewToolResultText("Project check passed. No errors or warnings."), nil
	}
	return root, textResult(rendered...), nil
}

func (h *handler) diagnosticsWithFixes(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root

	results, err := h.diagnostics.CheckWithFixes(ctx, s)
	if err != nil {
		return root, nil, err
	}
	if len(results) == 0 {
		return root, mcp.NewToolResultText("Project check passed. No diagnostics found."), nil
	}

	// Structured content must be an object, so the list is only sent as text.
	b, err := json.Marshal(results)
	if err != nil {
		return root, nil, err
	}
	return root, mcp.NewToolResultText(string(b)), nil
}

func (h *handler) testProject(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root

	lines, err := h.devtools.Test(ctx, s, req.GetString(_argTestName, ""), req.GetBool(_argBacktrace, false))
	if err != nil {
		return root, nil, err
	}
	return root, textResult(lines...), nil
}
