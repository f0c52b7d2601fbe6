package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aretw0/semtoken/internal/cli"
	"github.com/aretw0/semtoken/internal/presentation/tui"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage stored drafts",
}

var draftSaveCmd = &cobra.Command{
	Use:   "save [descriptor.json|descriptor.yaml|-]",
	Short: "Store a descriptor under its token name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		d, err := readDescriptor(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		info, err := rt.Studio.SaveDraft(cmd.Context(), d)
		if err != nil {
			return err
		}
		tui.NewStatus(cmd.OutOrStdout()).Success("Saved draft %q (%s)", info.DisplayName, info.ID)
		return nil
	},
}

var draftNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Fill in a descriptor interactively and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if tui.IsTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		d, err := cli.FillDescriptor(cmd.Context(), tui.NewSurveyPrompter(), rt.Studio.Catalog(), domain.NewDescriptor())
		if cli.IsInterrupted(err) {
			tui.NewStatus(cmd.OutOrStdout()).Info("Aborted")
			return nil
		}
		if err != nil {
			return err
		}
		info, err := rt.Studio.SaveDraft(cmd.Context(), d)
		if err != nil {
			return err
		}
		tui.NewStatus(cmd.OutOrStdout()).Success("Saved draft %q (%s)", info.DisplayName, info.ID)
		return nil
	},
}

var draftLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Print a stored draft as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		d, err := rt.Studio.LoadDraft(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored drafts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		drafts, err := rt.Studio.ListDrafts(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			if drafts == nil {
				drafts = []domain.DraftInfo{}
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(drafts)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tUPDATED")
		for _, info := range drafts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.DisplayName, info.UpdatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Studio.DeleteDraft(cmd.Context(), args[0]); err != nil {
			return err
		}
		tui.NewStatus(cmd.OutOrStdout()).Success("Deleted draft %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.AddCommand(draftSaveCmd, draftNewCmd, draftLoadCmd, draftListCmd, draftDeleteCmd)
	draftListCmd.Flags().Bool("json", false, "Print JSON")
}
