package devtoolsmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.lsp.dev/protocol"
)

const (
	_argFilePath  = "file_path"
	_argLine      = "line"
	_argCharacter = "character"
	_argNewName   = "new_name"
	_argApply     = "apply"
	_argEditID    = "edit_id"
	_argEdit      = "edit"
)

var (
	renameSymbolTool = mcp.NewTool("rename_symbol",
		mcp.WithDescription("Prepares a `WorkspaceEdit` for renaming a symbol across the entire project. "+
			"The edit is previewed as a diff and held under an edit_id, which must be applied with `apply_workspace_edit`. "+
			"Set apply to write the edit immediately instead."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project, or a path inside it.")),
		mcp.WithString(_argFilePath, mcp.Required(), mcp.Description("The file containing the symbol, absolute or relative to the project root.")),
		mcp.WithNumber(_argLine, mcp.Required(), mcp.Min(0), mcp.Description("The 0-based line of the symbol.")),
		mcp.WithNumber(_argCharacter, mcp.Required(), mcp.Min(0), mcp.Description("The 0-based character of the symbol on its line.")),
		mcp.WithString(_argNewName, mcp.Required(), mcp.Description("The new name of the symbol.")),
		mcp.WithBoolean(_argApply, mcp.Description("Apply the rename immediately instead of returning a pending edit.")),
	)
	applyEditTool = mcp.NewTool("apply_workspace_edit",
		mcp.WithDescription("Applies a `WorkspaceEdit` to the workspace. This is the final step for code modification tools like `rename_symbol` or `get_diagnostics_with_fixes`. "+
			"Pass the edit_id of a pending edit, or the edit itself."),
		mcp.WithString(_argEditID, mcp.Description("The ID of a pending edit returned by `rename_symbol`.")),
		mcp.WithAny(_argEdit, mcp.Description("A JSON object representing the LSP `WorkspaceEdit` to apply.")),
		mcp.WithDestructiveHintAnnotation(true),
	)
)

// pendingRename is the result of a previewed rename.
type pendingRename struct {
	Description string                 `json:"description"`
	EditID      string                 `json:"edit_id"`
	Diff        string                 `json:"diff"`
	EditToApply protocol.WorkspaceEdit `json:"edit_to_apply"`
}

func newPendingRename(p entity.PendingEdit) pendingRename {
	return pendingRename{
		Description: fmt.Sprintf("WorkspaceEdit to %s. Apply it with the `apply_workspace_edit` tool, passing edit_id %q.", p.Description, p.ID),
		EditID:      p.ID,
		Diff:        p.Diff,
		EditToApply: p.Edit,
	}
}

func (h *handler) renameSymbol(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root

	file, err := req.RequireString(_argFilePath)
	if err != nil {
		return root, nil, err
	}
	line, err := req.RequireInt(_argLine)
	if err != nil {
		return root, nil, err
	}
	character, err := req.RequireInt(_argCharacter)
	if err != nil {
		return root, nil, err
	}
	if line < 0 || character < 0 {
		return root, nil, fmt.Errorf("position %d:%d must not be negative", line, character)
	}
	newName, err := req.RequireString(_argNewName)
	if err != nil {
		return root, nil, err
	}

	position := protocol.Position{Line: uint32(line), Character: uint32(character)}
	result, err := h.devtools.Rename(ctx, s, file, position, newName, req.GetBool(_argApply, false))
	if err != nil {
		return root, nil, err
	}
	if result.Pending == nil {
		return root, mcp.NewToolResultText(appliedText(fmt.Sprintf("Renamed symbol to %s.", newName), result.AppliedFiles)), nil
	}
	res, err := mcp.NewToolResultJSON(newPendingRename(*result.Pending))
	return root, res, err
}

func (h *handler) applyWorkspaceEdit(_ context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	id := req.GetString(_argEditID, "")
	edit, err := workspaceEditArgument(req)
	if err != nil {
		return "", nil, err
	}

	files, err := h.devtools.ApplyEdit(id, edit)
	root := h.rootOf(files)
	if err != nil {
		return root, nil, err
	}
	return root, mcp.NewToolResultText(appliedText("Workspace edit applied successfully.", files)), nil
}

// workspaceEditArgument decodes the edit argument, given either as an object or as its JSON text.
func workspaceEditArgument(req mcp.CallToolRequest) (*protocol.WorkspaceEdit, error) {
	raw, ok := req.GetArguments()[_argEdit]
	if !ok || raw == nil {
		return nil, nil
	}

	var data []byte
	if text, ok := raw.(string); ok {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		data = []byte(text)
	} else {
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WorkspaceEdit JSON: %w", err)
		}
		data = b
	}

	var edit protocol.WorkspaceEdit
	if err := json.Unmarshal(data, &edit); err != nil {
		return nil, fmt.Errorf("invalid WorkspaceEdit JSON: %w", err)
	}
	return &edit, nil
}

// rootOf returns the root of the project owning the first written file.
func (h *handler) rootOf(files []string) string {
	if len(files) == 0 {
		return ""
	}
	if s, ok := h.registry.GetByPath(files[0]); ok {
		return s.Project.Root
	}
	return ""
}

func appliedText(summary string, files []string) string {
	if len(files) == 0 {
		return summary
	}
	var sb strings.Builder
	sb.WriteString(summary)
	sb.WriteString(" Files changed:")
	for _, f := range files {
		sb.WriteString("\n- ")
		sb.WriteString(f)
	}
	return sb.String()
}
