package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
)

func TestNewConfig(t *testing.T) {
	t.Run("embedded defaults", func(t *testing.T) {
		t.Setenv(_envConfigDir, t.TempDir())

		cfg, err := NewConfig(ConfigParams{})
		require.NoError(t, err)

		var command string
		require.NoError(t, cfg.Get("languageServer.command").Populate(&command))
		assert.Equal(t, "rust-analyzer", command)

		var debounce time.Duration
		require.NoError(t, cfg.Get("registry.reloadDebounce").Populate(&debounce))
		assert.Equal(t, time.Second, debounce)
	})

	t.Run("files listed in meta.yaml override defaults", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(_envConfigDir, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte("files:\n  - local.yaml\n  - missing.yaml\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), []byte("buildTool:\n  command: /opt/cargo\n"), 0o600))

		cfg, err := NewConfig(ConfigParams{})
		require.NoError(t, err)

		var command string
		require.NoError(t, cfg.Get("buildTool.command").Populate(&command))
		assert.Equal(t, "/opt/cargo", command)
		assert.Equal(t, "config", cfg.Name())
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv(_envConfigDir, t.TempDir())

		cfg, err := NewConfig(ConfigParams{Overrides: Overrides{
			"registry": map[string]interface{}{"path": "/tmp/projects.toml"},
		}})
		require.NoError(t, err)

		var path string
		require.NoError(t, cfg.Get("registry.path").Populate(&path))
		assert.Equal(t, "/tmp/projects.toml", path)
	})

	t.Run("environment expansion", func(t *testing.T) {
		t.Setenv(_envConfigDir, t.TempDir())
		t.Setenv("DEVTOOLS_REGISTRY_PATH", "/etc/devtools.toml")

		cfg, err := NewConfig(ConfigParams{})
		require.NoError(t, err)

		var path string
		require.NoError(t, cfg.Get("registry.path").Populate(&path))
		assert.Equal(t, "/etc/devtools.toml", path)
	})

	t.Run("malformed meta.yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(_envConfigDir, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte("files: [\n"), 0o600))

		_, err := NewConfig(ConfigParams{})
		assert.Error(t, err)
	})
}

func TestNewSugaredLogger(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "console to stderr",
			yaml: "logging:\n  level: debug\n  encoding: console\n",
		},
		{
			name: "json development",
			yaml: "logging:\n  level: info\n  development: true\n  encoding: json\n",
		},
		{
			name:    "invalid level",
			yaml:    "logging:\n  level: loud\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := config.NewYAML(config.Source(strings.NewReader(tt.yaml)))
			require.NoError(t, err)

			logger, err := NewSugaredLogger(provider)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, NewLogger(logger))
		})
	}

	t.Run("output paths", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "devtools.log")
		provider, err := config.NewYAML(config.Static(map[string]interface{}{
			"logging": map[string]interface{}{
				"level":       "info",
				"outputPaths": []string{logFile},
			},
		}))
		require.NoError(t, err)

		logger, err := NewSugaredLogger(provider)
		require.NoError(t, err)
		logger.Infow("hello", "component", "test")
		require.NoError(t, logger.Sync())

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "hello")
	})
}
