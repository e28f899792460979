// Package cli implements the fjscene command-line interface.
//
// # Commands
//
//   - run: build a scene script and render it
//   - print: write the converted script without running anything
//   - verbs: list protocol verbs and their arguments
//   - formats: list the conversion table
//   - completion: generate shell completions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the [CLI] value shared by every command.
package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fjscene/pkg/buildinfo"
	"github.com/matzehuels/fjscene/pkg/config"
	"github.com/matzehuels/fjscene/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "fjscene"

	// stdinPath selects standard input as the script source.
	stdinPath = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Getenv reads the environment (default os.Getenv).
	Getenv func(string) string

	// Stdin is the script source for "-" (default os.Stdin).
	Stdin io.Reader

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "fjscene builds scenes for the Fujiyama renderer",
		Long:          `fjscene reads scene scripts, converts textures, meshes and framebuffers to the renderer's native formats, and streams the scene to the renderer.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fjscene/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.verbsCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scene Loading
// =============================================================================

// loadConfig reads --config or the user config file.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadDefault(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "renderer", cfg.Renderer, "timeout", cfg.Timeout.Duration)
	return cfg, nil
}

// loadScene reads a script into a new builder. The caller closes the
// builder even when an error is returned.
func (c *CLI) loadScene(path string, cfg *config.Config) (*scene.Builder, error) {
	b := scene.NewBuilder(scene.Options{
		WorkspaceRoot: cfg.WorkspaceRoot,
		Logger:        c.Logger,
	})

	r, closeFn, err := c.openScript(path)
	if err != nil {
		return b, err
	}
	defer closeFn()

	prog := newProgress(c.Logger)
	if err := b.Load(r); err != nil {
		return b, err
	}
	prog.done("Loaded " + strconv.Itoa(len(b.Commands())) + " commands")
	return b, nil
}

func (c *CLI) openScript(path string) (io.Reader, func(), error) {
	if path == stdinPath {
		return c.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// closeScene removes the workspace and reports teardown warnings.
func (c *CLI) closeScene(b *scene.Builder) {
	before := len(b.Diagnostics())
	if err := b.Close(); err != nil {
		c.Logger.Warn("cannot remove workspace", "path", b.Workspace(), "err", err)
	}
	for _, d := range b.Diagnostics()[before:] {
		c.Logger.Warn(d.Message, "path", d.Path)
	}
}
