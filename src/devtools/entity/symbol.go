package entity

import (
	"go.lsp.dev/protocol"
)

// SymbolCandidate is one workspace symbol matching a query.
type SymbolCandidate struct {
	Name          string
	Kind          protocol.SymbolKind
	Location      protocol.Location
	ContainerName string
}

// File returns the filesystem path of the candidate's location.
func (c SymbolCandidate) File() string {
	return c.Location.URI.Filename()
}

// SymbolInfo describes a resolved symbol definition.
type SymbolInfo struct {
	Symbol         string `json:"symbol"`
	Kind           string `json:"kind"`
	FilePath       string `json:"file_path"`
	StartLine      uint32 `json:"start_line"`
	EndLine        uint32 `json:"end_line"`
	Documentation  string `json:"documentation,omitempty"`
	DefinitionCode string `json:"definition_code,omitempty"`
}

// SymbolUsage is one reference to a symbol along with a short excerpt around it.
type SymbolUsage struct {
	FilePath string `json:"file_path"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
	Context  string `json:"context"`
}
