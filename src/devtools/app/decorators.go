package app

import (
	"fmt"
	"path"

	"github.com/uber/devtools-mcp/src/devtools/internal/core"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
)

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Cfg config.Provider
	FS  fs.DevtoolsFS
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	combined, err := ensureLogFolder(p.Cfg, p.FS)
	if err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	if err := ensureRegistryFolder(combined, p.FS); err != nil {
		return nil, fmt.Errorf("ensuring registry folder: %v", err)
	}

	return combined, nil
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider, fs fs.DevtoolsFS) (config.Provider, error) {
	var c core.LoggingConfig
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stdout" || outputPath == "stderr" {
			continue
		}
		dir := path.Dir(outputPath)
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("creating logging directory: %v", err)
		}
	}

	return cfg, nil
}

// The registry file watcher watches the parent directory of the registry file, so it must exist before startup.
func ensureRegistryFolder(cfg config.Provider, fs fs.DevtoolsFS) error {
	var registryPath string
	if err := cfg.Get("registry.path").Populate(&registryPath); err != nil {
		return fmt.Errorf("loading registry config: %v", err)
	}
	if registryPath == "" {
		return nil
	}

	expanded, err := fs.Expand(registryPath)
	if err != nil {
		return fmt.Errorf("expanding registry path: %v", err)
	}
	if err := fs.MkdirAll(path.Dir(expanded)); err != nil {
		return fmt.Errorf("creating registry directory: %v", err)
	}
	return nil
}
