package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Planer",
	Long:  `All software has versions. This is Planer's.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Planer %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
