// Package registryfile persists the set of loaded projects as a TOML document.
package registryfile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"github.com/uber/devtools-mcp/src/devtools/mapper"
	"github.com/uber/devtools-mcp/src/devtools/model"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKey = "registry"

// Module provides the registry file repository.
var Module = fx.Provide(New)

// Config is the registry block of the application config.
type Config struct {
	Path           string        `yaml:"path"`
	ReloadDebounce time.Duration `yaml:"reloadDebounce"`
}

// Repository reads and writes the persisted project registry.
type Repository interface {
	// Path returns the expanded location of the registry file.
	Path() string
	// Load reads the persisted projects. A missing, empty or malformed file yields no projects and a warning, never an error.
	Load() []entity.Project
	// Save rewrites the whole file with the given projects.
	Save(projects []entity.Project) error
}

// Params are the inputs of New.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	FS     fs.DevtoolsFS
}

type repository struct {
	path   string
	logger *zap.SugaredLogger
	fs     fs.DevtoolsFS
}

// New returns the registry file repository configured by the registry block.
func New(p Params) (Repository, error) {
	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("reading %s config: %w", _configKey, err)
	}
	if cfg.Path == "" {
		return nil, errors.New("registry.path must be set")
	}
	path, err := p.FS.Expand(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("expanding registry path %q: %w", cfg.Path, err)
	}
	return &repository{
		path:   path,
		logger: p.Logger.With("component", "registry-file"),
		fs:     p.FS,
	}, nil
}

func (r *repository) Path() string {
	return r.path
}

func (r *repository) Load() []entity.Project {
	exists, err := r.fs.FileExists(r.path)
	if err != nil {
		r.logger.Warnw("Cannot stat registry file, starting with no projects", "path", r.path, "error", err)
		return nil
	}
	if !exists {
		r.logger.Warnw("Registry file does not exist, starting with no projects", "path", r.path)
		return nil
	}

	data, err := r.fs.ReadFile(r.path)
	if err != nil {
		r.logger.Warnw("Cannot read registry file, starting with no projects", "path", r.path, "error", err)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		r.logger.Infow("Registry file is empty", "path", r.path)
		return nil
	}

	var f model.RegistryFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		r.logger.Warnw("Malformed registry file, starting with no projects", "path", r.path, "error", err)
		return nil
	}
	return mapper.ModelToProjects(&f)
}

func (r *repository) Save(projects []entity.Project) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(mapper.ProjectsToModel(projects)); err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	if err := r.fs.MkdirAll(filepath.Dir(r.path)); err != nil {
		return &errors.IOError{Op: "create directory", Path: filepath.Dir(r.path), Err: err}
	}
	if err := r.fs.WriteFile(r.path, buf.Bytes()); err != nil {
		return &errors.IOError{Op: "write", Path: r.path, Err: err}
	}
	return nil
}
