package entity

import "go.lsp.dev/protocol"

// Severity levels reported by the build tool that are kept as diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Span is a source location reported by the build tool. Lines and columns are 1-based.
type Span struct {
	File      string
	LineStart uint32
	ColStart  uint32
	LineEnd   uint32
	ColEnd    uint32
	IsPrimary bool
}

// Range converts the span into a 0-based protocol range.
func (s Span) Range() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: toZeroBased(s.LineStart), Character: toZeroBased(s.ColStart)},
		End:   protocol.Position{Line: toZeroBased(s.LineEnd), Character: toZeroBased(s.ColEnd)},
	}
}

func toZeroBased(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}

// Diagnostic is a compiler message with at least one source span.
type Diagnostic struct {
	Severity string
	Rendered string
	Message  string
	Code     string
	Spans    []Span
}

// PrimarySpan returns the first span flagged primary.
func (d Diagnostic) PrimarySpan() (Span, bool) {
	for _, s := range d.Spans {
		if s.IsPrimary {
			return s, true
		}
	}
	return Span{}, false
}

// CodeFix is a named transformation offered by the language server for a diagnostic.
type CodeFix struct {
	Title string                  `json:"title"`
	Kind  string                  `json:"kind,omitempty"`
	Edit  *protocol.WorkspaceEdit `json:"edit,omitempty"`
}

// DiagnosticWithFixes is a diagnostic located at its primary span, along with the fixes available there.
type DiagnosticWithFixes struct {
	FilePath       string    `json:"file_path"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	Line           uint32    `json:"line"`
	Character      uint32    `json:"character"`
	AvailableFixes []CodeFix `json:"available_fixes"`
}
