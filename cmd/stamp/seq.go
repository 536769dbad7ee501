package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/totocaster/stamp/internal/platform"
	"github.com/totocaster/stamp/pkg/core"
	"github.com/totocaster/stamp/pkg/sequential"
	"github.com/totocaster/stamp/pkg/watch"
)

var (
	seqPrefix  string
	seqWidth   int
	seqStart   int
	seqGlob    string
	seqCheck   bool
	seqCounter bool
	seqWatch   bool
)

var seqCmd = &cobra.Command{
	Use:     "seq [title]",
	Aliases: []string{"sequential"},
	Short:   "Generate sequential codes from the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeqCommand(cmd, seqCommandOptions{
			Spec: sequential.Spec{
				Prefix:  seqPrefix,
				Width:   seqWidth,
				Start:   seqStart,
				Pattern: seqGlob,
			},
			Check:     seqCheck,
			Counter:   seqCounter,
			Watch:     seqWatch,
			TitleArgs: args,
		})
	},
}

func init() {
	rootCmd.AddCommand(seqCmd)
	seqCmd.Flags().StringVar(&seqPrefix, "prefix", "P", "Prefix for generated code (case-insensitive match)")
	seqCmd.Flags().IntVar(&seqWidth, "width", 4, "Number of digits for zero padding")
	seqCmd.Flags().IntVar(&seqStart, "start", 1, "Starting number when no entries are found")
	seqCmd.Flags().StringVar(&seqGlob, "glob", "", "Scan entries matching a glob (e.g. '**/P*') instead of the top level")
	seqCmd.Flags().BoolVar(&seqCheck, "check", false, "Print the next code without a title")
	seqCmd.Flags().BoolVar(&seqCounter, "counter", false, "Show highest existing number for the prefix")
	seqCmd.Flags().BoolVar(&seqWatch, "watch", false, "Keep running and print the next code whenever the directory changes")
}

type seqCommandOptions struct {
	Spec sequential.Spec
	// Project routes generation through the stamper's project source.
	Project      bool
	CounterLabel string
	Check        bool
	Counter      bool
	Watch        bool
	TitleArgs    []string
}

func runSeqCommand(cmd *cobra.Command, opts seqCommandOptions) error {
	r, err := loadRuntime()
	if err != nil {
		return err
	}
	fsys := os.DirFS(r.WorkDir)
	if opts.Project {
		opts.Spec = platform.ProjectSpec(r.Config)
	}

	if opts.Counter {
		highest, err := sequential.Highest(fsys, opts.Spec)
		if err != nil {
			return err
		}

		label := fmt.Sprintf("%s counter", opts.CounterLabel)
		if opts.CounterLabel == "" {
			prefix := opts.Spec.Prefix
			if prefix == "" {
				prefix = platform.ProjectPrefix
			}
			label = fmt.Sprintf("counter for prefix %s", strings.ToUpper(prefix))
		}

		if highest == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Current %s: none\n", label)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Current %s: %d\n", label, highest)
		}
		return nil
	}

	title := strings.Join(opts.TitleArgs, " ")
	if opts.Check {
		title = ""
	}

	render := func() error {
		var code string
		var err error
		if opts.Project {
			code, err = r.Stamper.Stamp(core.KindProject)
		} else {
			code, _, err = sequential.Next(fsys, opts.Spec)
		}
		if err != nil {
			return err
		}
		if title != "" {
			code += " " + title
		}
		return outputResult(cmd, code)
	}

	if !opts.Watch {
		return render()
	}
	return watchWorkspace(cmd, r, opts.Spec.Pattern != "", render)
}

// watchWorkspace prints once, then again after every change until interrupted.
func watchWorkspace(cmd *cobra.Command, r *platform.Runtime, recursive bool, render func() error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := render(); err != nil {
		return err
	}

	w := watch.New(r.WorkDir, func(context.Context) error {
		return render()
	}, watch.WithRecursive(recursive), watch.WithLogger(r.Logger))
	if err := w.Start(ctx); err != nil {
		return err
	}

	r.Logger.Debug("watching workspace", "dir", r.WorkDir, "recursive", recursive)
	<-w.Done()
	return nil
}
