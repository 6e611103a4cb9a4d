package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/rasterkit"
)

// app holds the flags shared by every subcommand.
type app struct {
	stdout, stderr io.Writer

	verbose   bool
	workers   int
	strictCRC bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "rasterctl",
		Short:         "Inspect, convert and process PNM and PNG images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log codec and pipeline details to stderr")
	pf.IntVar(&a.workers, "workers", 0, "goroutines for row-parallel stages (0 = GOMAXPROCS)")
	pf.BoolVar(&a.strictCRC, "strict-crc", false, "fail on PNG chunk CRC mismatches")

	root.AddCommand(
		a.newInfoCmd(),
		a.newConvertCmd(),
		a.newProcessCmd(),
		a.newPreviewCmd(),
		a.newGradientCmd(),
		a.newLineCmd(),
	)
	return root
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

func (a *app) options(extra ...rasterkit.Option) []rasterkit.Option {
	opts := []rasterkit.Option{
		rasterkit.WithLogger(a.logger()),
		rasterkit.WithWorkers(a.workers),
		rasterkit.WithStrictCRC(a.strictCRC),
	}
	return append(opts, extra...)
}
