package devtoolsmcp

import (
	"context"
	stderr "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
)

const (
	_argPath        = "path"
	_argProjectName = "project_name"
)

var (
	addProjectTool = mcp.NewTool("add_project",
		mcp.WithDescription("Loads a new Rust project into the workspace by its absolute root path. This is required before other tools can operate on it."),
		mcp.WithString(_argPath, mcp.Required(), mcp.Description("The absolute root path of the project to load.")),
	)
	removeProjectTool = mcp.NewTool("remove_project",
		mcp.WithDescription("Remove a project from the workspace by its name."),
		mcp.WithString(_argProjectName, mcp.Required(), mcp.Description("The name of the project to remove (e.g., 'rust-devtools-mcp'), or a path inside it.")),
		mcp.WithDestructiveHintAnnotation(false),
	)
	listProjectsTool = mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects currently loaded in the workspace."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
)

func (h *handler) addProject(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	path, err := req.RequireString(_argPath)
	if err != nil {
		return "", nil, err
	}

	description, err := h.registry.Add(ctx, path)
	var loaded *errors.AlreadyLoadedError
	if stderr.As(err, &loaded) {
		return loaded.Root, mcp.NewToolResultText(fmt.Sprintf("Project %s is already loaded.", loaded.Root)), nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("loading project %s: %w", path, err)
	}
	return description.Root, mcp.NewToolResultText(fmt.Sprintf("Successfully loaded new project: %s", description.Root)), nil
}

func (h *handler) removeProject(ctx context.Context, req mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	s, err := h.findProject(req)
	if err != nil {
		return "", nil, err
	}
	root := s.Project.Root
	name := s.Project.Name()

	removed, ok := h.registry.Remove(ctx, root)
	if !ok {
		return root, mcp.NewToolResultError(fmt.Sprintf("Failed to remove project '%s', it might have been removed already.", name)), nil
	}
	if err := removed.Server.Shutdown(ctx); err != nil {
		h.logger.Warnw("language server did not shut down cleanly", "root", root, "error", err)
	}
	return root, mcp.NewToolResultText(fmt.Sprintf("Successfully removed project: %s", name)), nil
}

func (h *handler) listProjects(_ context.Context, _ mcp.CallToolRequest) (string, *mcp.CallToolResult, error) {
	projects := h.registry.List()
	if len(projects) == 0 {
		return "", mcp.NewToolResultText("No projects loaded. Use 'add_project' to load one."), nil
	}

	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		status := "(ready)"
		if p.IsIndexing {
			status = "(indexing...)"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) %s", p.Name, p.Root, status))
	}
	return "", textResult(lines...), nil
}
