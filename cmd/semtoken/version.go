package main

import (
	"fmt"

	"github.com/aretw0/semtoken"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of semtoken",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := semtoken.SemVer()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "semtoken version %s\n", v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
