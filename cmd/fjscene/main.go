package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fjscene/internal/cli"
	"github.com/matzehuels/fjscene/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitCode(os.Stderr, run(ctx)))
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode reports err and maps it to the process exit status. Deferred
// cleanup in the commands has already run when this is called.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	if stderrors.Is(err, context.Canceled) {
		fmt.Fprintln(w, errors.UserMessage(err))
		return 130 // Standard shell convention for SIGINT
	}
	fmt.Fprintln(w, "Error:", errors.UserMessage(err))
	return 1
}
