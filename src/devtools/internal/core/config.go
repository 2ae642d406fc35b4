package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	devtoolsconfig "github.com/uber/devtools-mcp/src/devtools/config"
	uber_config "go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_envConfigDir     = "DEVTOOLS_CONFIG_DIR"
	_defaultConfigDir = "src/devtools/config"
)

// ConfigModule provides the config.Provider.
var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

// Overrides are values applied on top of every configuration file, typically coming from command line flags.
// Keys are nested the same way as in the YAML files.
type Overrides map[string]interface{}

// ConfigParams are the inputs of NewConfig.
type ConfigParams struct {
	fx.In

	Overrides Overrides `optional:"true"`
}

type Config struct {
	provider uber_config.Provider
}

func (c Config) Get(path string) uber_config.Value {
	return c.provider.Get(path)
}

func (c Config) Name() string {
	return "config"
}

// NewConfig assembles the configuration from the embedded defaults, the files listed in meta.yaml and the overrides.
func NewConfig(p ConfigParams) (uber_config.Provider, error) {
	options := []uber_config.YAMLOption{
		uber_config.Source(bytes.NewReader(devtoolsconfig.Base)),
	}

	files, err := configFiles(getConfigDir())
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		options = append(options, uber_config.File(file))
	}
	if len(p.Overrides) > 0 {
		options = append(options, uber_config.Static(map[string]interface{}(p.Overrides)))
	}
	options = append(options, uber_config.Expand(os.LookupEnv))

	provider, err := uber_config.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return Config{provider: provider}, nil
}

// configFiles returns the existing files listed in the meta.yaml of configDir.
// A missing meta.yaml is not an error: the embedded defaults are used on their own.
func configFiles(configDir string) ([]string, error) {
	metaPath := filepath.Join(configDir, "meta.yaml")
	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		return nil, nil
	}

	metaProvider, err := uber_config.NewYAML(
		uber_config.File(metaPath),
		uber_config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meta configuration: %w", err)
	}

	var configFiles []string
	if err := metaProvider.Get("files").Populate(&configFiles); err != nil {
		return nil, fmt.Errorf("failed to read files list from meta.yaml: %w", err)
	}

	var validFiles []string
	for _, file := range configFiles {
		fullPath := filepath.Join(configDir, file)
		if _, err := os.Stat(fullPath); err == nil {
			validFiles = append(validFiles, fullPath)
		}
	}
	return validFiles, nil
}

// getConfigDir returns the path to the configuration directory
func getConfigDir() string {
	if configDir := os.Getenv(_envConfigDir); configDir != "" {
		return configDir
	}

	// Relative to the workspace root, for runs from a source checkout.
	return _defaultConfigDir
}
