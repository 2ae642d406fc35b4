package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/devtools-mcp/src/devtools/internal/core"
	"go.uber.org/fx"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDependenciesAreSatisfied(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(opts(core.Overrides{})))
}

func TestOverrides(t *testing.T) {
	assert.Empty(t, (&cliOptions{}).overrides())
	assert.Equal(t, core.Overrides{
		"registry":  map[string]interface{}{"path": "/tmp/registry.toml"},
		"transport": map[string]interface{}{"type": "http", "address": "127.0.0.1:9000"},
	}, (&cliOptions{registryPath: "/tmp/registry.toml", transport: "http", address: "127.0.0.1:9000"}).overrides())
	assert.Equal(t, core.Overrides{
		"transport": map[string]interface{}{"type": "sse"},
	}, (&cliOptions{transport: "sse"}).overrides())
}

// run executes the CLI against a registry file in a temporary directory.
func run(t *testing.T, registry string, args ...string) (string, error) {
	t.Setenv("DEVTOOLS_CONFIG_DIR", t.TempDir())
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", registry}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestProjectsCommands(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "registry.toml")
	project := filepath.Join(dir, "demo")
	require.NoError(t, os.Mkdir(project, 0o755))
	project, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)

	out, err := run(t, registry, "projects", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found in the workspace.")

	out, err = run(t, registry, "projects", "add", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Added project")

	out, err = run(t, registry, "projects", "add", project)
	require.NoError(t, err)
	assert.Contains(t, out, "already in the workspace")

	content, err := os.ReadFile(registry)
	require.NoError(t, err)
	assert.Contains(t, string(content), project)

	out, err = run(t, registry, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "- demo ")

	out, err = run(t, registry, "projects", "rm", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project")

	out, err = run(t, registry, "projects", "rm", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Project not found")

	_, err = run(t, registry, "projects", "add", project)
	require.NoError(t, err)
	out, err = run(t, registry, "projects", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 project(s)")

	out, err = run(t, registry, "projects", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clear")
}

func TestProjectsAddRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(file, []byte("[package]\n"), 0o600))

	_, err := run(t, filepath.Join(dir, "registry.toml"), "projects", "add", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	_, err = run(t, filepath.Join(dir, "registry.toml"), "projects", "add", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRemoveDeletedProject(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "registry.toml")
	project := filepath.Join(dir, "gone")
	require.NoError(t, os.Mkdir(project, 0o755))
	resolved, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)

	_, err = run(t, registry, "projects", "add", resolved)
	require.NoError(t, err)
	require.NoError(t, os.Remove(resolved))

	out, err := run(t, registry, "projects", "rm", resolved)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project")
}

func TestConfigCommand(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "registry.toml")

	out, err := run(t, registry, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Registry file: ")
	assert.Contains(t, out, "languageServer:")
	assert.Contains(t, out, `"mcpServers"`)
	assert.Contains(t, out, `"command"`)
	assert.Contains(t, out, registry)

	out, err = run(t, registry, "config", "--transport", "sse", "--address", "127.0.0.1:4100")
	require.NoError(t, err)
	assert.Contains(t, out, `"url": "http://127.0.0.1:4100/sse"`)
	assert.Contains(t, out, "rust-devtools-mcp serve --config")

	_, err = run(t, registry, "config", "--transport", "carrier-pigeon")
	assert.Error(t, err)
}
