package mapper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.lsp.dev/protocol"
)

const hoverSeparator = "\n\n---\n\n"

// workspaceSymbol covers both the flat SymbolInformation shape and the nested WorkspaceSymbol shape,
// whose location may omit the range.
type workspaceSymbol struct {
	Name          string              `json:"name"`
	Kind          protocol.SymbolKind `json:"kind"`
	ContainerName string              `json:"containerName"`
	Location      struct {
		URI   protocol.DocumentURI `json:"uri"`
		Range *protocol.Range      `json:"range"`
	} `json:"location"`
}

// WorkspaceSymbolsToCandidates normalizes a workspace/symbol result into a flat candidate list.
// Entries whose location carries no range cannot be navigated to and are skipped.
func WorkspaceSymbolsToCandidates(raw json.RawMessage) ([]entity.SymbolCandidate, error) {
	if isNull(raw) {
		return nil, nil
	}
	var symbols []workspaceSymbol
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, fmt.Errorf("decoding workspace symbols: %w", err)
	}
	candidates := make([]entity.SymbolCandidate, 0, len(symbols))
	for _, s := range symbols {
		if s.Location.Range == nil {
			continue
		}
		candidates = append(candidates, entity.SymbolCandidate{
			Name:          s.Name,
			Kind:          s.Kind,
			ContainerName: s.ContainerName,
			Location: protocol.Location{
				URI:   s.Location.URI,
				Range: *s.Location.Range,
			},
		})
	}
	return candidates, nil
}

// HoverToMarkdown renders a textDocument/hover result as markdown.
// Markup content is returned as is, marked strings with a language are prefixed with a fenced language tag,
// and arrays are joined with a horizontal rule.
func HoverToMarkdown(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	contents := gjson.GetBytes(raw, "contents")
	if !contents.Exists() {
		return ""
	}
	if contents.IsArray() {
		parts := make([]string, 0)
		for _, c := range contents.Array() {
			if s := markedString(c); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, hoverSeparator)
	}
	return markedString(contents)
}

func markedString(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.String()
	case v.IsObject() && v.Get("kind").Exists():
		return v.Get("value").String()
	case v.IsObject():
		return fmt.Sprintf("```%s```\n%s", v.Get("language").String(), v.Get("value").String())
	default:
		return ""
	}
}

// CodeActionsToFixes maps a textDocument/codeAction result to fixes.
// Bare commands carry no edit and are skipped.
func CodeActionsToFixes(raw json.RawMessage) ([]entity.CodeFix, error) {
	if isNull(raw) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding code actions: %w", err)
	}
	fixes := make([]entity.CodeFix, 0, len(items))
	for _, item := range items {
		if gjson.GetBytes(item, "command").Type == gjson.String {
			continue
		}
		var action protocol.CodeAction
		if err := json.Unmarshal(item, &action); err != nil {
			return nil, fmt.Errorf("decoding code action: %w", err)
		}
		fixes = append(fixes, entity.CodeFix{
			Title: action.Title,
			Kind:  string(action.Kind),
			Edit:  action.Edit,
		})
	}
	return fixes, nil
}

// SymbolKindName returns the display name of a symbol kind.
func SymbolKindName(kind protocol.SymbolKind) string {
	return kind.String()
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
