package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/pkg/config"
	"github.com/totocaster/stamp/pkg/obsidian"
)

type configReport struct {
	Config  *config.Config   `json:"config"`
	WorkDir string           `json:"workdir"`
	Vault   *obsidian.Result `json:"vault,omitempty"`
	Stamper any              `json:"stamper,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRuntime()
		if err != nil {
			return err
		}

		report := configReport{
			Config:  r.Config,
			WorkDir: r.WorkDir,
			Vault:   r.Vault,
		}
		if intro, ok := any(r.Stamper).(introspection.Introspectable); ok {
			report.Stamper = intro.State()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
