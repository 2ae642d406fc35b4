package languageserver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.uber.org/zap"
)

var _stageTokens = []string{"rustAnalyzer/Building", "rustAnalyzer/cachePriming", "rustAnalyzer/Indexing"}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestProgressTrackerSingleStage(t *testing.T) {
	tracker := newProgressTracker("/p", _stageTokens, zap.NewNop().Sugar())
	token := raw(`"rustAnalyzer/Indexing"`)

	events := []string{
		`{"kind":"begin","title":"Indexing","percentage":0}`,
		`{"kind":"report","message":"1/4 (core)","percentage":25}`,
		`{"kind":"report","message":"2/4 (alloc)","percentage":50}`,
		`{"kind":"end"}`,
	}

	var updates []entity.IndexingUpdate
	for _, e := range events {
		if u, ok := tracker.Handle(token, raw(e)); ok {
			updates = append(updates, u)
		}
	}

	var started, finished int
	for _, u := range updates {
		switch u.Event {
		case entity.ProgressBegin:
			started++
			assert.True(t, u.IsIndexing)
		case entity.ProgressEnd:
			finished++
			assert.False(t, u.IsIndexing)
		}
		assert.Equal(t, "/p", u.Root)
		assert.Equal(t, entity.StageIndexing, u.Progress.Stage.Kind)
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, finished)
	require.Len(t, updates, 4)
	assert.Equal(t, entity.ProgressReport, updates[1].Event)
	assert.True(t, updates[1].IsIndexing)
	require.NotNil(t, updates[2].Progress.CurrentCount)
	assert.Equal(t, uint32(2), *updates[2].Progress.CurrentCount)
	assert.Equal(t, uint32(4), *updates[2].Progress.TotalCount)
	assert.Equal(t, 50.0, *updates[2].Progress.Percentage)

	select {
	case <-tracker.Indexed():
	default:
		t.Fatal("indexing completion was not signalled")
	}
}

func TestProgressTrackerIdleEvents(t *testing.T) {
	tracker := newProgressTracker("/p", _stageTokens, zap.NewNop().Sugar())
	token := raw(`"rustAnalyzer/Building"`)

	_, ok := tracker.Handle(token, raw(`{"kind":"report","message":"x"}`))
	assert.False(t, ok)
	_, ok = tracker.Handle(token, raw(`{"kind":"end"}`))
	assert.False(t, ok)
	_, ok = tracker.Handle(token, raw(`{"kind":"unknown"}`))
	assert.False(t, ok)
	_, ok = tracker.Handle(token, raw(`[]`))
	assert.False(t, ok)

	select {
	case <-tracker.Indexed():
		t.Fatal("idle end must not signal completion")
	default:
	}
}

func TestProgressTrackerStages(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantKind  entity.StageKind
		wantToken string
		signals   bool
	}{
		{"building", `"rustAnalyzer/Building"`, entity.StageBuilding, "rustAnalyzer/Building", true},
		{"cache priming", `"rustAnalyzer/cachePriming"`, entity.StageCachePriming, "rustAnalyzer/cachePriming", true},
		{"similar token is unknown", `"rustAnalyzer/Indexing/extra"`, entity.StageUnknown, "rustAnalyzer/Indexing/extra", false},
		{"string token", `"rustAnalyzer/Fetching"`, entity.StageUnknown, "rustAnalyzer/Fetching", false},
		{"numeric token", `7`, entity.StageUnknown, "numeric_7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newProgressTracker("/p", _stageTokens, zap.NewNop().Sugar())
			begin, ok := tracker.Handle(raw(tt.token), raw(`{"kind":"begin","title":"Loading"}`))
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, begin.Progress.Stage.Kind)
			assert.Equal(t, tt.wantToken, begin.Progress.Stage.Token)

			end, ok := tracker.Handle(raw(tt.token), raw(`{"kind":"end"}`))
			require.True(t, ok)
			assert.False(t, end.IsIndexing)

			select {
			case <-tracker.Indexed():
				assert.True(t, tt.signals)
			default:
				assert.False(t, tt.signals)
			}
		})
	}
}

func TestProgressTrackerSignalsOnce(t *testing.T) {
	tracker := newProgressTracker("/p", _stageTokens, zap.NewNop().Sugar())
	for _, token := range []string{`"rustAnalyzer/Building"`, `"rustAnalyzer/Indexing"`} {
		_, ok := tracker.Handle(raw(token), raw(`{"kind":"begin","title":"x"}`))
		require.True(t, ok)
		_, ok = tracker.Handle(raw(token), raw(`{"kind":"end"}`))
		require.True(t, ok)
	}

	<-tracker.Indexed()
	select {
	case <-tracker.Indexed():
		t.Fatal("completion must be signalled once")
	default:
	}
}

func TestParseProgress(t *testing.T) {
	stage := entity.IndexingStage{Kind: entity.StageIndexing}

	p := parseProgress(stage, "indexing serde-json 3/10", nil)
	assert.Equal(t, "serde-json", p.CurrentItem)
	require.NotNil(t, p.CurrentCount)
	assert.Equal(t, uint32(3), *p.CurrentCount)
	assert.Equal(t, uint32(10), *p.TotalCount)

	p = parseProgress(stage, "nothing to see", nil)
	assert.Empty(t, p.CurrentItem)
	assert.Nil(t, p.CurrentCount)
	assert.Nil(t, p.TotalCount)

	p = parseProgress(stage, "99999999999/1", nil)
	assert.Nil(t, p.CurrentCount)
}

func TestStageKindOf(t *testing.T) {
	assert.Equal(t, entity.StageBuilding, stageKindOf("rustAnalyzer/Building"))
	assert.Equal(t, entity.StageCachePriming, stageKindOf("rustAnalyzer/cachePriming"))
	assert.Equal(t, entity.StageIndexing, stageKindOf("Indexing"))
	assert.Equal(t, entity.StageUnknown, stageKindOf("rustAnalyzer/flycheck"))
}
