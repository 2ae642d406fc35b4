package languageserver

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.uber.org/zap"
)

const (
	_progressKindBegin  = "begin"
	_progressKindReport = "report"
	_progressKindEnd    = "end"

	_numericTokenPrefix = "numeric_"
)

var (
	_itemPattern  = regexp.MustCompile(`(?:indexing|building|loading)\s+([\w-]+)`)
	_countPattern = regexp.MustCompile(`(\d+)/(\d+)`)
)

// workDoneProgress covers the begin, report and end values of a work done progress notification.
type workDoneProgress struct {
	Kind       string   `json:"kind"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Percentage *float64 `json:"percentage"`
}

// progressTracker runs the indexing state machine of one session.
// Each progress token is a stage that is either idle or active.
type progressTracker struct {
	mu     sync.Mutex
	root   string
	known  map[string]entity.StageKind
	active map[string]*entity.IndexingProgress
	logger *zap.SugaredLogger

	// indexed is released once, on the first end of a known stage.
	indexed     chan struct{}
	indexedOnce sync.Once
}

func newProgressTracker(root string, stageTokens []string, logger *zap.SugaredLogger) *progressTracker {
	known := make(map[string]entity.StageKind, len(stageTokens))
	for _, token := range stageTokens {
		known[token] = stageKindOf(token)
	}
	return &progressTracker{
		root:    root,
		known:   known,
		active:  make(map[string]*entity.IndexingProgress),
		logger:  logger,
		indexed: make(chan struct{}, 1),
	}
}

// stageKindOf maps a configured stage token to its stage by suffix, e.g. "rustAnalyzer/cachePriming".
func stageKindOf(token string) entity.StageKind {
	name := token
	if i := strings.LastIndex(token, "/"); i >= 0 {
		name = token[i+1:]
	}
	switch strings.ToLower(name) {
	case "building":
		return entity.StageBuilding
	case "cachepriming":
		return entity.StageCachePriming
	case "indexing":
		return entity.StageIndexing
	default:
		return entity.StageUnknown
	}
}

// Handle feeds one $/progress notification to the state machine.
// It returns the update to emit, or false when the event causes no transition or report.
func (t *progressTracker) Handle(rawToken, rawValue json.RawMessage) (entity.IndexingUpdate, bool) {
	token := parseToken(rawToken)
	var value workDoneProgress
	if err := json.Unmarshal(rawValue, &value); err != nil {
		t.logger.Warnw("ignoring malformed progress value", "token", token, "error", err)
		return entity.IndexingUpdate{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stage := t.stage(token)
	current, isActive := t.active[token]

	switch value.Kind {
	case _progressKindBegin:
		progress := parseProgress(stage, strings.TrimSpace(value.Title+" "+value.Message), value.Percentage)
		t.active[token] = progress
		event := entity.ProgressBegin
		if isActive {
			event = entity.ProgressReport
		}
		return t.update(true, event, progress), true

	case _progressKindReport:
		if !isActive {
			t.logger.Debugw("ignoring progress report for idle stage", "token", token)
			return entity.IndexingUpdate{}, false
		}
		progress := parseProgress(stage, value.Message, value.Percentage)
		if progress.CurrentItem == "" {
			progress.CurrentItem = current.CurrentItem
		}
		t.active[token] = progress
		return t.update(true, entity.ProgressReport, progress), true

	case _progressKindEnd:
		if !isActive {
			t.logger.Debugw("ignoring progress end for idle stage", "token", token)
			return entity.IndexingUpdate{}, false
		}
		delete(t.active, token)
		if stage.Kind != entity.StageUnknown {
			t.signalIndexed()
		}
		return t.update(false, entity.ProgressEnd, &entity.IndexingProgress{Stage: stage}), true

	default:
		t.logger.Warnw("ignoring progress with unknown kind", "token", token, "kind", value.Kind)
		return entity.IndexingUpdate{}, false
	}
}

// Indexed is released on the first end of a known stage. Later ends do not re-arm it.
func (t *progressTracker) Indexed() <-chan struct{} {
	return t.indexed
}

func (t *progressTracker) signalIndexed() {
	t.indexedOnce.Do(func() {
		select {
		case t.indexed <- struct{}{}:
		default:
			t.logger.Warnw("indexing completion signal already pending", "root", t.root)
		}
	})
}

func (t *progressTracker) stage(token string) entity.IndexingStage {
	kind, ok := t.known[token]
	if !ok {
		kind = entity.StageUnknown
	}
	return entity.IndexingStage{Kind: kind, Token: token}
}

func (t *progressTracker) update(indexing bool, event entity.ProgressEvent, progress *entity.IndexingProgress) entity.IndexingUpdate {
	cp := *progress
	return entity.IndexingUpdate{
		Root:       t.root,
		IsIndexing: indexing,
		Event:      event,
		Progress:   &cp,
	}
}

// parseToken returns a string token as is and prefixes a numeric one.
func parseToken(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return _numericTokenPrefix + string(raw)
}

// parseProgress recovers the item and count of a progress message. Fields that cannot be recovered stay empty.
func parseProgress(stage entity.IndexingStage, message string, percentage *float64) *entity.IndexingProgress {
	p := &entity.IndexingProgress{
		Stage:      stage,
		Percentage: percentage,
	}
	if m := _itemPattern.FindStringSubmatch(message); m != nil {
		p.CurrentItem = m[1]
	}
	if m := _countPattern.FindStringSubmatch(message); m != nil {
		current, errCurrent := strconv.ParseUint(m[1], 10, 32)
		total, errTotal := strconv.ParseUint(m[2], 10, 32)
		if errCurrent == nil && errTotal == nil {
			c, tt := uint32(current), uint32(total)
			p.CurrentCount = &c
			p.TotalCount = &tt
		}
	}
	return p
}
