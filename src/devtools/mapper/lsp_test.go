package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func TestWorkspaceSymbolsToCandidates(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantNames []string
		wantErr   bool
	}{
		{
			name: "null",
			raw:  "null",
		},
		{
			name: "flat",
			raw: `[{"name":"Foo","kind":23,"containerName":"crate::a",
				"location":{"uri":"file:///p/src/a.rs","range":{"start":{"line":1,"character":2},"end":{"line":1,"character":5}}}}]`,
			wantNames: []string{"Foo"},
		},
		{
			name: "nested without range is skipped",
			raw: `[{"name":"Foo","kind":23,"location":{"uri":"file:///p/src/a.rs"}},
				{"name":"Bar","kind":12,"location":{"uri":"file:///p/src/b.rs","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":3}}}}]`,
			wantNames: []string{"Bar"},
		},
		{
			name:    "malformed",
			raw:     `{"name":1}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WorkspaceSymbolsToCandidates(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			names := []string{}
			for _, c := range got {
				names = append(names, c.Name)
			}
			if tt.wantNames == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.wantNames, names)
			}
		})
	}
}

func TestWorkspaceSymbolsLocation(t *testing.T) {
	got, err := WorkspaceSymbolsToCandidates(json.RawMessage(`[{"name":"Foo","kind":23,"containerName":"m",
		"location":{"uri":"file:///p/src/a.rs","range":{"start":{"line":1,"character":2},"end":{"line":3,"character":1}}}}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, protocol.SymbolKindStruct, got[0].Kind)
	assert.Equal(t, "m", got[0].ContainerName)
	assert.Equal(t, "/p/src/a.rs", got[0].File())
	assert.Equal(t, uint32(3), got[0].Location.Range.End.Line)
}

func TestHoverToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"null", "null", ""},
		{"no contents", `{}`, ""},
		{"markup", `{"contents":{"kind":"markdown","value":"**doc**"}}`, "**doc**"},
		{"plain marked string", `{"contents":"text"}`, "text"},
		{"language marked string", `{"contents":{"language":"rust","value":"fn a()"}}`, "```rust```\nfn a()"},
		{
			"array",
			`{"contents":["one",{"language":"rust","value":"struct S"}]}`,
			"one\n\n---\n\n```rust```\nstruct S",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoverToMarkdown(json.RawMessage(tt.raw)))
		})
	}
}

func TestCodeActionsToFixes(t *testing.T) {
	raw := `[
		{"title":"Run","command":"rust-analyzer.run"},
		{"title":"Add semicolon","kind":"quickfix","edit":{"changes":{"file:///p/src/a.rs":[
			{"range":{"start":{"line":0,"character":5},"end":{"line":0,"character":5}},"newText":";"}]}}},
		{"title":"Extract","kind":"refactor.extract","command":{"title":"x","command":"y"}}
	]`
	fixes, err := CodeActionsToFixes(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, fixes, 2)
	assert.Equal(t, "Add semicolon", fixes[0].Title)
	assert.Equal(t, "quickfix", fixes[0].Kind)
	require.NotNil(t, fixes[0].Edit)
	assert.Len(t, fixes[0].Edit.Changes, 1)
	assert.Equal(t, "Extract", fixes[1].Title)
	assert.Nil(t, fixes[1].Edit)

	fixes, err = CodeActionsToFixes(json.RawMessage("null"))
	assert.NoError(t, err)
	assert.Empty(t, fixes)

	_, err = CodeActionsToFixes(json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestSymbolKindName(t *testing.T) {
	assert.Equal(t, "Function", SymbolKindName(protocol.SymbolKindFunction))
}
