// Package mapper converts between entity, model and wire representations.
package mapper

import (
	"sort"

	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/model"
)

// ProjectsToModel maps loaded projects to the persisted registry document.
func ProjectsToModel(projects []entity.Project) *model.RegistryFile {
	f := &model.RegistryFile{Projects: make(map[string]model.RegistryProject, len(projects))}
	for _, p := range projects {
		ignore := p.IgnoreCrates
		if ignore == nil {
			ignore = []string{}
		}
		f.Projects[p.Root] = model.RegistryProject{
			Root:         p.Root,
			IgnoreCrates: ignore,
		}
	}
	return f
}

// ModelToProjects maps the persisted registry document to projects, ordered by root.
// An entry without an explicit root falls back to its key.
func ModelToProjects(f *model.RegistryFile) []entity.Project {
	if f == nil {
		return nil
	}
	projects := make([]entity.Project, 0, len(f.Projects))
	for key, p := range f.Projects {
		root := p.Root
		if root == "" {
			root = key
		}
		projects = append(projects, entity.Project{
			Root:         root,
			IgnoreCrates: p.IgnoreCrates,
		})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Root < projects[j].Root })
	return projects
}
