package main

import (
	"github.com/spf13/cobra"
)

var (
	projectCheck   bool
	projectCounter bool
	projectWatch   bool
)

var projectCmd = &cobra.Command{
	Use:   "project [title]",
	Short: "Generate project number (PXXXX)",
	Long: `Print the next project code: one above the highest P-number found in the
current directory, or project_start from the config when there is none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeqCommand(cmd, seqCommandOptions{
			Project:      true,
			CounterLabel: "project",
			Check:        projectCheck,
			Counter:      projectCounter,
			Watch:        projectWatch,
			TitleArgs:    args,
		})
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.Flags().BoolVar(&projectCheck, "check", false, "Print the next number without a title")
	projectCmd.Flags().BoolVar(&projectCounter, "counter", false, "Show highest existing number")
	projectCmd.Flags().BoolVar(&projectWatch, "watch", false, "Keep running and print the next number whenever the directory changes")
}
