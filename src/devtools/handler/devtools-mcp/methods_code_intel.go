package devtoolsmcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	_argSymbolName = "symbol_name"
	_argFileHint   = "file_hint"
)

var (
	symbolInfoTool = mcp.NewTool("get_symbol_info",
		mcp.WithDescription("Get comprehensive information (documentation, definition, location) for a symbol within a project."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithString(_argSymbolName, mcp.Required(), mcp.Description("The symbol to look up, e.g. 'Config' or 'Config::load'.")),
		mcp.WithString(_argFileHint, mcp.Description("Part of the path of the file defining the symbol, used to pick between candidates.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	symbolUsagesTool = mcp.NewTool("find_symbol_usages",
		mcp.WithDescription("Find all usages of a symbol across the entire project."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithString(_argSymbolName, mcp.Required(), mcp.Description("The symbol whose usages are searched.")),
		mcp.WithString(_argFileHint, mcp.Description("Part of the path of the file defining the symbol, used to pick between candidates.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
)

func (h *handler) symbolInfo(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root
	name, err := req.RequireString(_argSymbolName)
	if err != nil {
		return root, nil, err
	}

	info, err := h.devtools.SymbolInfo(ctx, s, name, req.GetString(_argFileHint, ""))
	if err != nil {
		return root, nil, err
	}
	result, err := mcp.NewToolResultJSON(info)
	return root, result, err
}

func (h *handler) symbolUsages(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root
	name, err := req.RequireString(_argSymbolName)
	if err != nil {
		return root, nil, err
	}

	usages, err := h.devtools.SymbolUsages(ctx, s, name, req.GetString(_argFileHint, ""))
	if err != nil {
		return root, nil, err
	}
	if len(usages) == 0 {
		return root, mcp.NewToolResultText("No usages found."), nil
	}

	texts := make([]string, 0, len(usages))
	for _, u := range usages {
		texts = append(texts, fmt.Sprintf("### %s\n(Line: %d)\n```rust\n%s\n```", u.FilePath, u.Line, u.Context))
	}
	return root, textResult(texts...), nil
}
