package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fjscene/pkg/pipeline"
)

// printCommand creates the print command.
func (c *CLI) printCommand() *cobra.Command {
	var (
		workspaceRoot string
		keep          bool
	)

	cmd := &cobra.Command{
		Use:   "print <script>",
		Short: "Print the converted scene without running it",
		Long: `Print the converted scene without running it.

The output lists the pre-conversion commands, the renderer protocol with
resource paths rewritten, and the post-conversion commands. Nothing is
executed and the library path does not need to be set.

The workspace named in the output is removed when print exits, so the
paths are for inspection only. Pass --keep-workspace to leave it in place
and replay the output by hand.`,
		Example: `  # Inspect the conversions a scene needs
  fjscene print scene.fjs

  # Keep the scratch directory and replay the script
  fjscene print --keep-workspace scene.fjs > replay.sh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if workspaceRoot != "" {
				cfg.WorkspaceRoot = workspaceRoot
			}

			b, err := c.loadScene(args[0], cfg)
			if err != nil {
				c.closeScene(b)
				return err
			}
			if keep {
				c.Logger.Info("Keeping workspace", "path", b.Workspace())
			} else {
				defer c.closeScene(b)
			}
			return pipeline.Print(cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", "parent directory for scratch files (overrides config)")
	cmd.Flags().BoolVar(&keep, "keep-workspace", false, "leave the workspace in place after printing")

	return cmd
}
