package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/semtoken/internal/presentation/tui"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish [descriptor.json|descriptor.yaml|-]",
	Short: "Render a descriptor and publish the Turtle document",
	Long: `Renders the descriptor (read from a file, stdin or a stored draft with --draft)
and hands the exact Turtle text to the configured publisher. Prints the URI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftID, _ := cmd.Flags().GetString("draft")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var d domain.TokenDescriptor
		if draftID != "" {
			d, err = rt.Studio.LoadDraft(cmd.Context(), draftID)
		} else {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			d, err = readDescriptor(path, cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		res, err := rt.Studio.Publish(cmd.Context(), d)
		if err != nil {
			tui.NewStatus(cmd.ErrOrStderr()).Failure("Publish failed: %v", err)
			return err
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.URI)
		return err
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("draft", "", "Publish a stored draft instead of a file")
	publishCmd.Flags().Bool("json", false, "Print the address, URI and Turtle as JSON")
}
