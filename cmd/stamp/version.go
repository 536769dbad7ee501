package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/totocaster/stamp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stamp version %s\ncommit: %s\nbuilt: %s\n", stamp.Version, stamp.Commit, stamp.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
