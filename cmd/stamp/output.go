package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/pkg/clipboard"
)

// extensionEnabled honours always_extension unless --ext was given explicitly.
func extensionEnabled(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("ext") || rt == nil {
		return flagExt
	}
	return flagExt || rt.Config.AlwaysExtension
}

func outputResult(cmd *cobra.Command, result string) error {
	if extensionEnabled(cmd) {
		result += ".md"
	}

	out := cmd.OutOrStdout()
	if !flagCopy {
		fmt.Fprintln(out, result)
		return nil
	}

	if err := clipboard.Copy(result); err != nil {
		// Fall back to stdout so the name is not lost.
		fmt.Fprintln(out, result)
		return fmt.Errorf("clipboard error: %w", err)
	}

	slog.Debug("copied to clipboard", "value", result)
	if !flagQuiet {
		fmt.Fprintln(out, result)
		fmt.Fprintln(out, "Copied to clipboard!")
	}
	return nil
}
