// Package registry manages the set of loaded projects and their language server sessions.
package registry

import (
	"context"
	stderr "errors"
	"fmt"
	"path/filepath"

	"github.com/uber/devtools-mcp/src/devtools/controller/notifications"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	languageserver "github.com/uber/devtools-mcp/src/devtools/gateway/language-server"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	registryfile "github.com/uber/devtools-mcp/src/devtools/repository/registry-file"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides the registry controller and ties project loading and shutdown to the application lifecycle.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, c Controller, logger *zap.SugaredLogger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := c.Load(ctx); err != nil {
					logger.Warnw("some persisted projects could not be loaded", "error", err)
				}
				return nil
			},
			OnStop: c.ShutdownAll,
		})
	}),
)

// Controller is the registry of loaded projects.
type Controller interface {
	// Add canonicalizes path and loads it as a new project.
	Add(ctx context.Context, path string) (entity.ProjectDescription, error)
	// Remove unloads the project at root and returns its session, which the caller shuts down.
	Remove(ctx context.Context, root string) (*project.Session, bool)
	// Get returns the project loaded at the canonical root.
	Get(root string) (*project.Session, bool)
	// GetByPath returns the project owning path, walking up its ancestors.
	GetByPath(path string) (*project.Session, bool)
	// Find resolves a project name or a path inside a project.
	Find(identifier string) (*project.Session, error)
	// List describes every loaded project, ordered by root.
	List() []entity.ProjectDescription
	// ShutdownAll shuts down every language server, one after the other.
	ShutdownAll(ctx context.Context) error
	// Load adds the projects of the registry file that are not loaded yet.
	Load(ctx context.Context) error
	// Clear removes and shuts down every project.
	Clear(ctx context.Context) error
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Logger   *zap.SugaredLogger
	FS       fs.DevtoolsFS
	Projects project.Repository
	File     registryfile.Repository
	Servers  languageserver.Factory
	Bus      notifications.Bus
}

type controller struct {
	logger   *zap.SugaredLogger
	fs       fs.DevtoolsFS
	projects project.Repository
	file     registryfile.Repository
	servers  languageserver.Factory
	bus      notifications.Bus
}

// New creates the registry controller.
func New(p Params) Controller {
	return &controller{
		logger:   p.Logger.With("component", "registry"),
		fs:       p.FS,
		projects: p.Projects,
		file:     p.File,
		servers:  p.Servers,
		bus:      p.Bus,
	}
}

func (c *controller) Add(ctx context.Context, path string) (entity.ProjectDescription, error) {
	root, err := c.canonicalDir(path)
	if err != nil {
		return entity.ProjectDescription{}, err
	}
	s, err := c.add(ctx, entity.Project{Root: root})
	if err != nil {
		return entity.ProjectDescription{}, err
	}
	return s.Describe(), nil
}

func (c *controller) add(ctx context.Context, p entity.Project) (*project.Session, error) {
	if err := c.projects.Reserve(p.Root); err != nil {
		return nil, err
	}

	server, err := c.servers.New(ctx, p)
	if err != nil {
		c.projects.Release(p.Root)
		return nil, fmt.Errorf("starting language server for %s: %w", p.Root, err)
	}

	s := project.NewSession(p, server)
	c.projects.Set(s)
	c.bus.Attach(server.Events())
	c.logger.Infow("project added", "root", p.Root)

	c.persist()
	c.bus.Publish(entity.ProjectAdded{Root: p.Root})
	c.publishSnapshot()
	return s, nil
}

func (c *controller) Remove(ctx context.Context, root string) (*project.Session, bool) {
	s, ok := c.projects.Delete(root)
	if !ok {
		return nil, false
	}
	c.logger.Infow("project removed", "root", root)

	c.persist()
	c.bus.Publish(entity.ProjectRemoved{Root: root})
	c.publishSnapshot()
	return s, true
}

func (c *controller) Get(root string) (*project.Session, bool) {
	return c.projects.Get(root)
}

func (c *controller) GetByPath(path string) (*project.Session, bool) {
	current := filepath.Clean(path)
	for {
		if s, ok := c.projects.Get(current); ok {
			return s, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, false
		}
		current = parent
	}
}

func (c *controller) Find(identifier string) (*project.Session, error) {
	for _, s := range c.projects.List() {
		if s.Project.Name() == identifier {
			return s, nil
		}
	}

	notFound := &errors.NotFoundError{Kind: "project", Name: identifier}
	path, err := c.fs.Canonicalize(identifier)
	if err != nil {
		return nil, notFound
	}
	if s, ok := c.GetByPath(path); ok {
		return s, nil
	}
	return nil, notFound
}

func (c *controller) List() []entity.ProjectDescription {
	sessions := c.projects.List()
	descriptions := make([]entity.ProjectDescription, 0, len(sessions))
	for _, s := range sessions {
		descriptions = append(descriptions, s.Describe())
	}
	return descriptions
}

func (c *controller) ShutdownAll(ctx context.Context) error {
	var errs error
	for _, s := range c.projects.List() {
		if err := s.Server.Shutdown(ctx); err != nil {
			c.logger.Errorw("failed to shut down language server", "root", s.Project.Root, "error", err)
			errs = multierr.Append(errs, fmt.Errorf("shutting down %s: %w", s.Project.Root, err))
		}
	}
	return errs
}

func (c *controller) Load(ctx context.Context) error {
	var errs error
	for _, p := range c.file.Load() {
		root, err := c.canonicalDir(p.Root)
		if err != nil {
			c.logger.Warnw("skipping persisted project", "root", p.Root, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		p.Root = root

		if _, err := c.add(ctx, p); err != nil {
			var alreadyLoaded *errors.AlreadyLoadedError
			if stderr.As(err, &alreadyLoaded) {
				c.logger.Debugw("persisted project is already loaded", "root", root)
				continue
			}
			c.logger.Errorw("failed to load persisted project", "root", root, "error", err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *controller) Clear(ctx context.Context) error {
	var errs error
	for _, s := range c.projects.List() {
		removed, ok := c.Remove(ctx, s.Project.Root)
		if !ok {
			continue
		}
		if err := removed.Server.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutting down %s: %w", removed.Project.Root, err))
		}
	}
	return errs
}

// canonicalDir resolves path to the canonical root of an existing directory.
func (c *controller) canonicalDir(path string) (string, error) {
	root, err := c.fs.Canonicalize(path)
	if err != nil {
		return "", &errors.NotFoundError{Kind: "directory", Name: path}
	}
	isDir, err := c.fs.DirExists(root)
	if err != nil {
		return "", &errors.IOError{Op: "stat", Path: root, Err: err}
	}
	if !isDir {
		return "", &errors.NotFoundError{Kind: "directory", Name: path}
	}
	return root, nil
}

// persist writes the registry file. A failed write is logged and the in-memory registry is kept.
func (c *controller) persist() {
	sessions := c.projects.List()
	projects := make([]entity.Project, 0, len(sessions))
	for _, s := range sessions {
		projects = append(projects, s.Project)
	}
	if err := c.file.Save(projects); err != nil {
		c.logger.Warnw("failed to persist the registry", "path", c.file.Path(), "error", err)
	}
}

func (c *controller) publishSnapshot() {
	c.bus.Publish(entity.RegistrySnapshot{Projects: c.List()})
}
