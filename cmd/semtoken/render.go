package main

import (
	"fmt"

	"github.com/aretw0/semtoken/internal/presentation/graph"
	"github.com/aretw0/semtoken/internal/presentation/tui"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [descriptor.json|descriptor.yaml|-]",
	Short: "Serialize a token descriptor to Turtle",
	Long: `Reads a token descriptor (a JSON or YAML draft) and prints its Turtle document.
Without an argument the descriptor is read from stdin; --sample renders the
editor's starting descriptor instead. --format=mermaid prints a flowchart of
the descriptor's terms; with --activate the activated vocabulary is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetBool("sample")
		activate, _ := cmd.Flags().GetBool("activate")
		pretty, _ := cmd.Flags().GetBool("pretty")
		format, _ := cmd.Flags().GetString("format")
		if format != "turtle" && format != "mermaid" {
			return fmt.Errorf("unknown format %q (want turtle or mermaid)", format)
		}

		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var d domain.TokenDescriptor
		if sample {
			d = domain.NewDescriptor()
		} else {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if d, err = readDescriptor(path, cmd.InOrStdin()); err != nil {
				return err
			}
		}
		var vocab []string
		if activate {
			d, vocab = rt.Studio.Activate(d)
		}

		if format == "mermaid" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(d, &graph.Overlay{Highlighted: vocab}))
			return err
		}

		out := rt.Studio.Render(d)
		if pretty && tui.IsTerminal(cmd.OutOrStdout()) {
			render := tui.NewRenderer(tui.TerminalWidth(cmd.OutOrStdout(), 100))
			if styled, err := render(tui.TurtleMarkdown(d.Name, out)); err == nil {
				out = styled
			}
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("sample", false, "Render the default sample descriptor")
	renderCmd.Flags().Bool("activate", false, "Merge the prefixes of the selected ontologies before rendering")
	renderCmd.Flags().Bool("pretty", false, "Syntax-highlight the output on a terminal")
	renderCmd.Flags().String("format", "turtle", "Output format: turtle or mermaid")
}
