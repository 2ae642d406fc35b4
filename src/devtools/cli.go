package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/handler"
	devtoolsmcp "github.com/uber/devtools-mcp/src/devtools/handler/devtools-mcp"
	"github.com/uber/devtools-mcp/src/devtools/internal/core"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"github.com/uber/devtools-mcp/src/devtools/internal/mcpfx"
	registryfile "github.com/uber/devtools-mcp/src/devtools/repository/registry-file"
	"go.uber.org/config"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// cliOptions are the flags shared by every command.
type cliOptions struct {
	registryPath string
	transport    string
	address      string
}

// overrides turns the flags into configuration overrides. Unset flags keep the configured values.
func (o *cliOptions) overrides() core.Overrides {
	overrides := core.Overrides{}
	if o.registryPath != "" {
		overrides["registry"] = map[string]interface{}{"path": o.registryPath}
	}
	transport := map[string]interface{}{}
	if o.transport != "" {
		transport["type"] = o.transport
	}
	if o.address != "" {
		transport["address"] = o.address
	}
	if len(transport) > 0 {
		overrides["transport"] = transport
	}
	return overrides
}

func newRootCommand() *cobra.Command {
	o := &cliOptions{}
	root := &cobra.Command{
		Use:          "rust-devtools-mcp",
		Short:        "Rust development tools for the Model Context Protocol",
		Version:      devtoolsmcp.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.registryPath, "config", "", "path of the project registry file (default ~/.rust-devtools-mcp.toml)")

	root.AddCommand(
		newServeCommand(o),
		newProjectsCommand(o),
		newConfigCommand(o),
	)
	return root
}

func addTransportFlags(cmd *cobra.Command, o *cliOptions) {
	cmd.Flags().StringVar(&o.transport, "transport", "", "MCP transport: stdio, sse or http")
	cmd.Flags().StringVar(&o.address, "address", "", "host:port the sse and http transports listen on")
}

func newServeCommand(o *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server and listen for requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(opts(o.overrides()))
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	addTransportFlags(cmd, o)
	return cmd
}

// registryFile builds the registry file repository alone, without starting any language server.
func registryFile(o *cliOptions) (registryfile.Repository, fs.DevtoolsFS, config.Provider, error) {
	var (
		file registryfile.Repository
		fsys fs.DevtoolsFS
		cfg  config.Provider
	)
	app := fx.New(
		fx.Supply(o.overrides()),
		core.ConfigModule,
		core.LoggerModule,
		fs.Module,
		registryfile.Module,
		fx.Populate(&file, &fsys, &cfg),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return nil, nil, nil, err
	}
	return file, fsys, cfg, nil
}

func newProjectsCommand(o *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the projects of the workspace",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <path>",
			Short: "Add a project to the workspace",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				file, fsys, _, err := registryFile(o)
				if err != nil {
					return err
				}
				return addProject(cmd.OutOrStdout(), file, fsys, args[0])
			},
		},
		&cobra.Command{
			Use:     "remove <path>",
			Aliases: []string{"rm"},
			Short:   "Remove a project from the workspace",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				file, fsys, _, err := registryFile(o)
				if err != nil {
					return err
				}
				return removeProject(cmd.OutOrStdout(), file, fsys, args[0])
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List the projects of the workspace",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				file, _, _, err := registryFile(o)
				if err != nil {
					return err
				}
				listProjects(cmd.OutOrStdout(), file)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every project from the workspace",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				file, _, _, err := registryFile(o)
				if err != nil {
					return err
				}
				return clearProjects(cmd.OutOrStdout(), file)
			},
		},
	)
	return cmd
}

func addProject(out io.Writer, file registryfile.Repository, fsys fs.DevtoolsFS, path string) error {
	root, err := fsys.Canonicalize(path)
	if err != nil {
		return fmt.Errorf("invalid project path %q: %w", path, err)
	}
	isDir, err := fsys.DirExists(root)
	if err != nil {
		return err
	}
	if !isDir {
		return fmt.Errorf("invalid project path %q: not a directory", path)
	}

	projects := file.Load()
	for _, p := range projects {
		if p.Root == root {
			fmt.Fprintf(out, "Project %s is already in the workspace.\n", beautify(root))
			return nil
		}
	}
	if err := file.Save(append(projects, entity.Project{Root: root})); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added project %s to the workspace.\n", beautify(root))
	return nil
}

func removeProject(out io.Writer, file registryfile.Repository, fsys fs.DevtoolsFS, path string) error {
	// A project directory deleted since it was added can still be removed by its former path.
	root, err := fsys.Canonicalize(path)
	if err != nil {
		expanded, expandErr := fsys.Expand(path)
		if expandErr != nil {
			return expandErr
		}
		if root, err = filepath.Abs(expanded); err != nil {
			return err
		}
	}

	projects := file.Load()
	kept := make([]entity.Project, 0, len(projects))
	for _, p := range projects {
		if p.Root != root {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		fmt.Fprintf(out, "Project not found: %s\n", beautify(root))
		return nil
	}
	if err := file.Save(kept); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed project %s from the workspace.\n", beautify(root))
	return nil
}

func listProjects(out io.Writer, file registryfile.Repository) {
	projects := file.Load()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found in the workspace.")
		fmt.Fprintln(out, "Add a project using: rust-devtools-mcp projects add <path>")
		return
	}
	fmt.Fprintln(out, "Projects in workspace:")
	for _, p := range projects {
		fmt.Fprintf(out, "  - %s %s\n", p.Name(), beautify(p.Root))
	}
}

func clearProjects(out io.Writer, file registryfile.Repository) error {
	projects := file.Load()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found in the workspace. Nothing to clear.")
		return nil
	}
	if err := file.Save(nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cleared %d project(s) from the workspace.\n", len(projects))
	return nil
}

func newConfigCommand(o *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration and the MCP client configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _, cfg, err := registryFile(o)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), file, cfg, o.registryPath)
		},
	}
	addTransportFlags(cmd, o)
	return cmd
}

func printConfig(out io.Writer, file registryfile.Repository, cfg config.Provider, registryFlag string) error {
	var transport mcpfx.Config
	if err := cfg.Get("transport").Populate(&transport); err != nil {
		return err
	}
	if err := transport.Validate(); err != nil {
		return err
	}

	effective, err := yaml.Marshal(cfg.Get(config.Root).Value())
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}

	executable, err := os.Executable()
	if err != nil {
		executable = devtoolsmcp.ServerName
	}
	var serveArgs []string
	if registryFlag != "" {
		serveArgs = append(serveArgs, "--config", file.Path())
	}
	if transport.Type != mcpfx.TransportStdio {
		serveArgs = append(serveArgs, "--transport", transport.Type, "--address", transport.Address)
	}
	snippet, err := handler.ClientConfig(transport, executable, serveArgs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Registry file: %s\n\n", beautify(file.Path()))
	fmt.Fprintf(out, "Effective configuration:\n%s\n", effective)
	fmt.Fprintln(out, "MCP client configuration (e.g. .cursor/mcp.json):")
	fmt.Fprintln(out, snippet)
	if transport.Type != mcpfx.TransportStdio {
		fmt.Fprintf(out, "\nStart the server with: rust-devtools-mcp serve %s\n", strings.Join(serveArgs, " "))
	}
	return nil
}

// beautify shortens paths under the home directory to start with ~.
func beautify(path string) string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return path
	}
	if rel, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rel)
	}
	return path
}
