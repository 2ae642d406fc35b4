package entity

import (
	"time"

	"go.lsp.dev/protocol"
)

// PendingEdit is a workspace edit previewed to the caller and held until it is applied or expires.
type PendingEdit struct {
	ID          string
	Root        string
	Description string
	Edit        protocol.WorkspaceEdit
	Diff        string
	CreatedAt   time.Time
}
