// Package command declares llcsim's CLI flags, following the
// Args-plus-[]cli.Flag shape cmd/containerd-nydus-grpc/pkg/command
// uses: one destination struct, one slice of bound cli.Flag values.
package command

import "github.com/urfave/cli/v2"

const (
	defaultTraceFile     = "data/trace.txt"
	defaultCapacityMiB   = 16
	defaultLineSize      = 64
	defaultAssociativity = 16
	defaultProtocol      = "MESI"
	defaultReplacement   = "plru"
	defaultAddressBits   = 32
)

// Args holds the parsed value of every flag.
type Args struct {
	TraceFile     string
	CapacityMiB   int
	LineSize      int
	Associativity int
	Protocol      string
	Replacement   string
	AddressBits   int
	Silent        bool
	Debug         bool
}

// Flags bundles Args with the cli.Flag slice bound to it.
type Flags struct {
	Args *Args
	F    []cli.Flag
}

// NewFlags returns Flags whose Args fields are zero until the
// cli.App applies the flags, which fills each one with its default or
// the value given on the command line.
func NewFlags() *Flags {
	args := &Args{}
	return &Flags{
		Args: args,
		F:    buildFlags(args),
	}
}

func buildFlags(args *Args) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Value:       defaultTraceFile,
			Usage:       "path to the trace `FILE`",
			Destination: &args.TraceFile,
		},
		&cli.IntFlag{
			Name:        "capacity",
			Value:       defaultCapacityMiB,
			Usage:       "cache capacity in `MIB`",
			Destination: &args.CapacityMiB,
		},
		&cli.IntFlag{
			Name:        "line_size",
			Value:       defaultLineSize,
			Usage:       "line size in `BYTES`, one of 4/16/32/64/128",
			Destination: &args.LineSize,
		},
		&cli.IntFlag{
			Name:        "associativity",
			Value:       defaultAssociativity,
			Usage:       "ways per set, one of 1/2/4/8/16/32",
			Destination: &args.Associativity,
		},
		&cli.StringFlag{
			Name:        "protocol",
			Value:       defaultProtocol,
			Usage:       "coherence `PROTOCOL`, MESI or MSI (MSI is not implemented)",
			Destination: &args.Protocol,
		},
		&cli.StringFlag{
			Name:        "replacement",
			Value:       defaultReplacement,
			Usage:       "replacement `POLICY`, plru or heuristic",
			Destination: &args.Replacement,
			Hidden:      true, // experimental
		},
		&cli.IntFlag{
			Name:        "address-bits",
			Value:       defaultAddressBits,
			Usage:       "address width in `BITS`",
			Destination: &args.AddressBits,
		},
		&cli.BoolFlag{
			Name:        "silent",
			Aliases:     []string{"s"},
			Usage:       "only print the command-9 dump and final statistics",
			Destination: &args.Silent,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "also print per-command entry/exit traces",
			Destination: &args.Debug,
		},
	}
}
