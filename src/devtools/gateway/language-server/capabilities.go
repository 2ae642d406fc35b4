package languageserver

import (
	"os"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const (
	_clientName    = "devtools-mcp"
	_workspaceName = "root"
)

var _codeActionKinds = []protocol.CodeActionKind{
	"",
	protocol.QuickFix,
	protocol.Refactor,
	protocol.RefactorExtract,
	protocol.RefactorInline,
	protocol.RefactorRewrite,
	protocol.Source,
	protocol.SourceOrganizeImports,
}

// initializeParams builds the initialize request for a workspace rooted at root.
// Capabilities are spelled out as JSON objects so that experimental entries sit next to the standard ones.
func initializeParams(root string, version string) map[string]interface{} {
	rootURI := uri.File(root)
	return map[string]interface{}{
		"processId": os.Getpid(),
		"clientInfo": map[string]interface{}{
			"name":    _clientName,
			"version": version,
		},
		"rootUri": rootURI,
		"workspaceFolders": []protocol.WorkspaceFolder{
			{URI: string(rootURI), Name: _workspaceName},
		},
		"capabilities": clientCapabilities(),
	}
}

func clientCapabilities() map[string]interface{} {
	return map[string]interface{}{
		"workspace": map[string]interface{}{
			"symbol": map[string]interface{}{
				"dynamicRegistration": false,
			},
			"workspaceEdit": map[string]interface{}{
				"documentChanges": true,
			},
			"didChangeWatchedFiles": map[string]interface{}{
				"dynamicRegistration": false,
			},
			"configuration": true,
		},
		"window": map[string]interface{}{
			"workDoneProgress": true,
		},
		"textDocument": map[string]interface{}{
			"hover": map[string]interface{}{
				"contentFormat": []protocol.MarkupKind{protocol.Markdown},
			},
			"references": map[string]interface{}{},
			"rename": map[string]interface{}{
				"prepareSupport": false,
			},
			"documentSymbol": map[string]interface{}{
				"hierarchicalDocumentSymbolSupport": false,
			},
			"codeAction": map[string]interface{}{
				"codeActionLiteralSupport": map[string]interface{}{
					"codeActionKind": map[string]interface{}{
						"valueSet": _codeActionKinds,
					},
				},
			},
		},
		"experimental": map[string]interface{}{
			"hoverActions": true,
		},
	}
}
