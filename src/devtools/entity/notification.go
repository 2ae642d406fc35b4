package entity

import (
	"fmt"
	"strings"
)

// ProjectDescriptionsPath is the routing path of registry snapshots, which belong to no single project.
const ProjectDescriptionsPath = "project_descriptions"

// Notification is an event forwarded by the notification bus to the boundary layer.
// The set of implementations is closed to this package; each one derives its own routing path and description.
type Notification interface {
	// RoutingPath is the project root the notification concerns, or a sentinel path.
	RoutingPath() string
	// Description is a human-readable summary of the notification.
	Description() string

	isNotification()
}

// IndexingUpdate reports a transition or progress report of one indexing stage of a project.
type IndexingUpdate struct {
	Root       string
	IsIndexing bool
	Event      ProgressEvent
	Progress   *IndexingProgress
}

// ToolInvocation mirrors a tool call handled by the boundary layer.
type ToolInvocation struct {
	Root    string
	Tool    string
	Success bool
	Payload string
}

// ProjectAdded reports that a project was added to the registry.
type ProjectAdded struct {
	Root string
}

// ProjectRemoved reports that a project was removed from the registry.
type ProjectRemoved struct {
	Root string
}

// RegistrySnapshot lists every loaded project after a registry mutation.
type RegistrySnapshot struct {
	Projects []ProjectDescription
}

func (n IndexingUpdate) RoutingPath() string   { return n.Root }
func (n ToolInvocation) RoutingPath() string   { return n.Root }
func (n ProjectAdded) RoutingPath() string     { return n.Root }
func (n ProjectRemoved) RoutingPath() string   { return n.Root }
func (n RegistrySnapshot) RoutingPath() string { return ProjectDescriptionsPath }

func (n IndexingUpdate) Description() string {
	if !n.IsIndexing {
		return "LSP Indexing: Finished"
	}
	if n.Progress == nil {
		return "LSP Indexing: Started"
	}
	return n.Progress.String()
}

func (n ToolInvocation) Description() string {
	status := "succeeded"
	if !n.Success {
		status = "failed"
	}
	if n.Payload == "" {
		return fmt.Sprintf("Tool %s %s", n.Tool, status)
	}
	return fmt.Sprintf("Tool %s %s: %s", n.Tool, status, n.Payload)
}

func (n ProjectAdded) Description() string   { return "Project Added" }
func (n ProjectRemoved) Description() string { return "Project Removed" }

func (n RegistrySnapshot) Description() string {
	if len(n.Projects) == 0 {
		return "No projects loaded"
	}
	indexing := 0
	for _, p := range n.Projects {
		if p.IsIndexing {
			indexing++
		}
	}
	parts := []string{
		fmt.Sprintf("Projects: %d total", len(n.Projects)),
		fmt.Sprintf("Ready: %d", len(n.Projects)-indexing),
	}
	if indexing > 0 {
		parts = append(parts, fmt.Sprintf("Indexing: %d", indexing))
	}
	return strings.Join(parts, ", ")
}

func (IndexingUpdate) isNotification()   {}
func (ToolInvocation) isNotification()   {}
func (ProjectAdded) isNotification()     {}
func (ProjectRemoved) isNotification()   {}
func (RegistrySnapshot) isNotification() {}
