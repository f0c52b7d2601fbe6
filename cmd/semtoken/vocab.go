package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [ontology-key...]",
	Short: "List ontologies or show the vocabulary of a selection",
	Long: `Without arguments, lists the available ontologies. With ontology keys, prints
the prefix bindings and prefix:term suggestions the selection activates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, _, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		catalog := rt.Studio.Catalog()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			if asJSON {
				return json.NewEncoder(out).Encode(catalog.List())
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tPREFIX\tNAMESPACE\tTERMS")
			for _, o := range catalog.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", o.Key, o.Prefix, o.URI, len(o.Terms))
			}
			fmt.Fprintf(tw, "\nDatatypes: %s\n", strings.Join(vocabulary.Datatypes(), ", "))
			return tw.Flush()
		}

		act := catalog.Activate(args, vocabulary.DefaultPrefixes())
		if asJSON {
			return json.NewEncoder(out).Encode(act)
		}
		for _, p := range act.Prefixes {
			fmt.Fprintf(out, "@prefix %s: <%s> .\n", p.Prefix, p.URI)
		}
		fmt.Fprintln(out)
		for _, term := range act.Vocab {
			fmt.Fprintln(out, term)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.Flags().Bool("json", false, "Print JSON")
}
