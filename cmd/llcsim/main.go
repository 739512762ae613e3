package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nkanderson/ECE585-llc/cmd/llcsim/pkg/command"
	"github.com/nkanderson/ECE585-llc/internal/engine"
	"github.com/nkanderson/ECE585-llc/internal/errdefs"
	"github.com/nkanderson/ECE585-llc/internal/logging"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	flags := command.NewFlags()
	app := &cli.App{
		Name:    "llcsim",
		Usage:   "trace-driven simulator for a shared inclusive MESI last-level cache",
		Version: Version,
		Flags:   flags.F,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return errors.Wrap(errdefs.ErrConfig, err.Error())
		},
		Action: func(_ *cli.Context) error {
			return run(flags.Args)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "llcsim:", err)
		os.Exit(exitCode(err))
	}
}

func run(args *command.Args) error {
	if args.Silent && args.Debug {
		return errors.Wrap(errdefs.ErrConfig, "-s/--silent and -d/--debug are mutually exclusive")
	}

	cfg := engine.Config{
		TracePath:     args.TraceFile,
		Capacity:      uint64(args.CapacityMiB) * 1024 * 1024,
		LineSize:      uint64(args.LineSize),
		Associativity: args.Associativity,
		AddressBits:   uint(args.AddressBits),
		Protocol:      engine.Protocol(args.Protocol),
		Replacement:   engine.Replacement(args.Replacement),
		Level:         logging.ParseLevel(args.Silent, args.Debug),
		Out:           os.Stdout,
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}

	return e.RunFile(args.TraceFile)
}

// exitCode maps an error kind to a process exit status: 2 for an
// argument/configuration error (any ConfigError, including flag-parsing
// errors and an invalid geometry), 1 for any other runtime error.
func exitCode(err error) int {
	if errdefs.IsConfig(err) {
		return 2
	}
	return 1
}
