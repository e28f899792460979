package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fjscene/pkg/config"
	"github.com/matzehuels/fjscene/pkg/errors"
	"github.com/matzehuels/fjscene/pkg/observability"
	"github.com/matzehuels/fjscene/pkg/pipeline"
)

// runOpts holds flag overrides for the run command.
type runOpts struct {
	renderer      string
	timeout       time.Duration
	workspaceRoot string
	summary       bool
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Build a scene script and render it",
		Long: `Build a scene script and render it.

Textures, meshes and saved framebuffers in foreign formats are converted
before and after rendering. The renderer's exit status becomes fjscene's
exit status. Use "-" to read the script from standard input.`,
		Example: `  # Render a scene
  fjscene run scene.fjs

  # Use a renderer outside PATH and give up after ten minutes
  fjscene run --renderer /opt/fj/bin/scene --timeout 10m scene.fjs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "renderer executable (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-process timeout, 0 waits forever (overrides config)")
	cmd.Flags().StringVar(&opts.workspaceRoot, "workspace-root", "", "parent directory for scratch files (overrides config)")
	cmd.Flags().BoolVar(&opts.summary, "summary", true, "print a summary after rendering")

	return cmd
}

func (c *CLI) runScene(ctx context.Context, path string, opts runOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cfg)

	libPath, err := cfg.ResolveLibraryPath(c.Getenv)
	if err != nil {
		return err
	}
	rc := pipeline.FromConfig(cfg, libPath)
	rc.Logger = c.Logger
	runner, err := pipeline.NewRunner(rc)
	if err != nil {
		return err
	}

	b, err := c.loadScene(path, cfg)
	defer c.closeScene(b)
	if err != nil {
		return err
	}

	stats := newRunStats()
	observability.SetPipelineHooks(stats)
	defer observability.Reset()

	result, err := runner.Run(ctx, b)
	if err != nil {
		if result != nil && !result.Status.Success() {
			c.Logger.Error("Renderer failed", "renderer", cfg.Renderer, "status", result.Status.Code, "reason", result.Status.Describe())
		}
		return err
	}

	if opts.summary {
		printRunSummary(result, stats)
	}
	if !result.Status.Success() {
		return &ExitError{
			Code: result.Status.Code,
			Err:  errors.New(errors.ErrCodeRendererFailure, "renderer %s: %s", cfg.Renderer, result.Status.Describe()),
		}
	}
	return nil
}

func (o runOpts) apply(cfg *config.Config) {
	if o.renderer != "" {
		cfg.Renderer = o.renderer
	}
	if o.timeout > 0 {
		cfg.Timeout.Duration = o.timeout
	}
	if o.workspaceRoot != "" {
		cfg.WorkspaceRoot = o.workspaceRoot
	}
}

// printRunSummary prints the job counts and stage timings.
func printRunSummary(result *pipeline.Result, stats *runStats) {
	if result.Status.Success() {
		printSuccess("Rendered %d commands", result.Commands)
	} else {
		printError("Renderer failed: %s", result.Status.Describe())
	}
	conversions, convTime, renderTime := stats.snapshot()
	parts := []string{
		fmt.Sprintf("%d pre", len(result.PreJobs)),
		fmt.Sprintf("%d post", len(result.PostJobs)),
	}
	if conversions > 0 {
		parts = append(parts, "convert "+convTime.Round(time.Millisecond).String())
	}
	parts = append(parts, "render "+renderTime.Round(time.Millisecond).String())
	printStats(parts)
}
