package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/pkg/core"
)

var (
	analogCheck   bool
	analogReset   bool
	analogCounter bool
)

var analogCmd = &cobra.Command{
	Use:   "analog",
	Short: "Generate analog/slipbox note filename (YYYY-MM-DD-AN)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRuntime()
		if err != nil {
			return err
		}
		date, err := r.Stamper.Date()
		if err != nil {
			return err
		}

		switch {
		case analogCheck:
			id, err := r.Stamper.StampWith(core.KindAnalog, r.Counters.Peek())
			if err != nil {
				return err
			}
			return outputResult(cmd, id)

		case analogReset:
			if err := r.Counters.ResetAnalog(date); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Counter reset for analog notes")
			}
			return nil

		case analogCounter:
			fmt.Fprintf(cmd.OutOrStdout(), "Current analog counter for %s: %d\n", date, r.Counters.AnalogCounter(date))
			return nil
		}

		return stampKind(cmd, core.KindAnalog)
	},
}

func init() {
	rootCmd.AddCommand(analogCmd)
	analogCmd.Flags().BoolVar(&analogCheck, "check", false, "Check next number without incrementing")
	analogCmd.Flags().BoolVar(&analogReset, "reset", false, "Reset today's counter")
	analogCmd.Flags().BoolVar(&analogCounter, "counter", false, "Show current counter value")
	analogCmd.MarkFlagsMutuallyExclusive("check", "reset", "counter")
}
