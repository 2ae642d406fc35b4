// Package entity contains the domain types of the devtools service.
package entity

import "path/filepath"

// Project is the persisted identity of a loaded project.
type Project struct {
	// Root is the canonical absolute directory of the project.
	Root string
	// IgnoreCrates lists crate names excluded from build checks.
	IgnoreCrates []string
}

// Name returns the last path component of the project root.
func (p Project) Name() string {
	return ProjectName(p.Root)
}

// ProjectName returns the display name of a project root.
func ProjectName(root string) string {
	return filepath.Base(root)
}

// ProjectDescription is a point-in-time view of a loaded project.
type ProjectDescription struct {
	Root       string `json:"root"`
	Name       string `json:"name"`
	IsIndexing bool   `json:"is_indexing"`
}
