package main

import (
	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/pkg/core"
)

// kindCommand builds a subcommand that prints one identifier of kind.
func kindCommand(kind core.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stampKind(cmd, kind)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		kindCommand(core.KindDaily, "Generate daily note filename (YYYY-MM-DD)"),
		kindCommand(core.KindFleeting, "Generate fleeting note filename (YYYY-MM-DD-FHHMMSS)"),
		kindCommand(core.KindVoice, "Generate voice transcript filename (YYYY-MM-DD-VTHHMMSS)"),
		kindCommand(core.KindMonthly, "Generate monthly review filename (YYYY-MM)"),
		kindCommand(core.KindYearly, "Generate yearly review filename (YYYY)"),
	)
}
