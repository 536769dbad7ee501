package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/internal/platform"
	"github.com/totocaster/stamp/pkg/config"
	"github.com/totocaster/stamp/pkg/core"
)

var (
	verbose    bool
	flagExt    bool
	flagCopy   bool
	flagQuiet  bool
	configPath string
	noObsidian bool

	// runtimeOptions is appended to every platform.New call (tests inject a clock and workdir here).
	runtimeOptions []platform.Option
	rt             *platform.Runtime
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   invokedName() + " [type]",
	Short: "Generate note filenames based on date/time",
	Long: `Stamp generates note filenames following a fixed set of naming conventions.

Available note types:
  - daily:    YYYY-MM-DD
  - fleeting: YYYY-MM-DD-FHHMMSS
  - voice:    YYYY-MM-DD-VTHHMMSS
  - analog:   YYYY-MM-DD-AN (sequential per day)
  - monthly:  YYYY-MM
  - yearly:   YYYY
  - project:  PXXXX (next number found in the current directory)
  - seq:      custom prefix + zero-padded number

Default (no type): YYYY-MM-DD-HHMM`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		// Commands share one runtime per invocation.
		rt = nil
	},
	RunE: runDefault,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagExt, "ext", false, "Add .md extension to output")
	rootCmd.PersistentFlags().BoolVar(&flagCopy, "copy", false, "Copy to clipboard (macOS only)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode (no additional output)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $STAMP_CONFIG or ~/.stamp/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noObsidian, "no-obsidian", false, "Ignore Obsidian vault formats")
}

// invokedName is "nid" when run through the nid symlink, "stamp" otherwise.
func invokedName() string {
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	if name == "nid" {
		return name
	}
	return "stamp"
}

// loadRuntime lazily wires the application so that commands like version work
// without a readable config or counter file.
func loadRuntime() (*platform.Runtime, error) {
	if rt != nil {
		return rt, nil
	}

	opts := []platform.Option{platform.WithLogger(slog.Default())}
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, platform.WithConfig(cfg))
	}
	if noObsidian {
		opts = append(opts, platform.WithObsidian(false))
	}
	opts = append(opts, runtimeOptions...)

	r, err := platform.New(opts...)
	if err != nil {
		return nil, err
	}
	rt = r
	return rt, nil
}

func runDefault(cmd *cobra.Command, args []string) error {
	kind := core.KindDefault
	if len(args) > 0 {
		// Kinds are also subcommands, so only unknown names reach this point.
		k, err := core.ParseKind(args[0])
		if err != nil {
			return err
		}
		kind = k
	}
	return stampKind(cmd, kind)
}

// stampKind generates an identifier with the runtime's registered source and prints it.
func stampKind(cmd *cobra.Command, kind core.Kind) error {
	r, err := loadRuntime()
	if err != nil {
		return err
	}
	id, err := r.Stamper.Stamp(kind)
	if err != nil {
		return err
	}
	return outputResult(cmd, id)
}
