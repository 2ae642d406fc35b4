package entity

import (
	"fmt"
	"strings"
)

// StageKind identifies a known indexing stage of the language server.
type StageKind int

const (
	// StageUnknown is any progress stream whose token is not one of the known stage tokens.
	StageUnknown StageKind = iota
	StageBuilding
	StageCachePriming
	StageIndexing
)

// IndexingStage is the stage a progress stream reports on.
type IndexingStage struct {
	Kind StageKind
	// Token is the raw progress token, and the stage name for StageUnknown.
	Token string
}

// String returns the display name of the stage.
func (s IndexingStage) String() string {
	switch s.Kind {
	case StageBuilding:
		return "Building"
	case StageCachePriming:
		return "Cache Priming"
	case StageIndexing:
		return "Indexing"
	default:
		return s.Token
	}
}

// ProgressEvent is the kind of work-done progress event that produced an update.
type ProgressEvent int

const (
	ProgressBegin ProgressEvent = iota
	ProgressReport
	ProgressEnd
)

// String implements fmt.Stringer.
func (e ProgressEvent) String() string {
	switch e {
	case ProgressBegin:
		return "begin"
	case ProgressReport:
		return "report"
	case ProgressEnd:
		return "end"
	default:
		return fmt.Sprintf("ProgressEvent(%d)", int(e))
	}
}

// IndexingProgress is the progress of one stage as recovered from a progress event.
// Optional fields are nil when the event did not carry them.
type IndexingProgress struct {
	Stage        IndexingStage
	CurrentItem  string
	CurrentCount *uint32
	TotalCount   *uint32
	Percentage   *float64
}

// String renders the progress as "<stage> [cur/total] pct% <item>".
func (p IndexingProgress) String() string {
	parts := []string{p.Stage.String()}
	if p.CurrentCount != nil && p.TotalCount != nil {
		pct := 0
		if *p.TotalCount > 0 {
			pct = int(float64(*p.CurrentCount) / float64(*p.TotalCount) * 100)
		}
		parts = append(parts, fmt.Sprintf("[%d/%d] %d%%", *p.CurrentCount, *p.TotalCount, pct))
	} else if p.Percentage != nil {
		parts = append(parts, fmt.Sprintf("%d%%", int(*p.Percentage)))
	}
	if p.CurrentItem != "" {
		parts = append(parts, p.CurrentItem)
	}
	return strings.Join(parts, " ")
}
