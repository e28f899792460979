package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fjscene/pkg/convert"
	"github.com/matzehuels/fjscene/pkg/protocol"
)

// verbsCommand creates the verbs command.
func (c *CLI) verbsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verbs",
		Short: "List renderer protocol verbs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVerbs(cmd.OutOrStdout())
		},
	}
}

// formatsCommand creates the formats command.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported file formats and their converters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeFormats(cmd.OutOrStdout())
		},
	}
}

func writeVerbs(w io.Writer) error {
	for _, s := range protocol.Specs() {
		if _, err := fmt.Fprintln(w, StyleHighlight.Render(string(s.Verb))+strings.TrimPrefix(s.Usage(), string(s.Verb))); err != nil {
			return err
		}
	}
	return nil
}

func writeFormats(w io.Writer) error {
	for _, f := range convert.Table() {
		fmt.Fprintln(w, StyleTitle.Render(string(f.Role))+" "+StyleDim.Render("native "+f.Native))
		for _, conv := range f.Conversions {
			fmt.Fprintf(w, "  %-6s %s %-8s %s\n",
				conv.Ext, StyleDim.Render(iconArrow), conv.Converter, StyleDim.Render("("+conv.Phase.String()+")"))
		}
	}
	return nil
}
