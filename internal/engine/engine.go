// Package engine wires the trace dispatcher, MESI controller, bus
// bridge and cache array together into the single entry point
// cmd/llcsim drives.
package engine

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nkanderson/ECE585-llc/internal/bus"
	"github.com/nkanderson/ECE585-llc/internal/cache"
	"github.com/nkanderson/ECE585-llc/internal/coherence"
	"github.com/nkanderson/ECE585-llc/internal/errdefs"
	"github.com/nkanderson/ECE585-llc/internal/logging"
	"github.com/nkanderson/ECE585-llc/internal/stats"
	"github.com/nkanderson/ECE585-llc/internal/trace"
)

// Protocol selects the coherence protocol. Only MESI is implemented;
// MSI is accepted by the flag parser solely so it can be rejected
// with a clear ConfigError.
type Protocol string

const (
	MESI Protocol = "MESI"
	MSI  Protocol = "MSI"
)

// Replacement selects the cache set's VictimFinder.
type Replacement string

const (
	PLRU      Replacement = "plru"
	Heuristic Replacement = "heuristic"
)

// Config bundles every geometry/behavior knob the CLI exposes.
type Config struct {
	TracePath     string
	Capacity      uint64 // bytes
	LineSize      uint64
	Associativity int
	AddressBits   uint
	Protocol      Protocol
	Replacement   Replacement
	Level         logging.Level
	Out           io.Writer
}

// Engine is one constructed simulation: geometry, array, bus, stats,
// controller and dispatcher, ready to run a trace.
type Engine struct {
	Array      *cache.Array
	Stats      *stats.Counters
	Controller *coherence.Controller
	Dispatcher *trace.Dispatcher
	Sinks      *logging.Sinks
}

// New validates cfg and constructs an Engine. It returns a
// ConfigError-wrapped error for an unsupported protocol or invalid
// geometry.
func New(cfg Config) (*Engine, error) {
	if cfg.Protocol != MESI {
		return nil, errors.Wrapf(errdefs.ErrConfig, "protocol %q is not implemented", cfg.Protocol)
	}

	geometry, err := cache.NewGeometry(cfg.Capacity, cfg.LineSize, cfg.Associativity, cfg.AddressBits)
	if err != nil {
		return nil, err
	}

	var finder cache.VictimFinder
	switch cfg.Replacement {
	case "", PLRU:
		finder = cache.NewTreePLRUFinder()
	case Heuristic:
		finder = cache.NewHeuristicFinder()
	default:
		return nil, errors.Wrapf(errdefs.ErrConfig, "replacement policy %q is not implemented", cfg.Replacement)
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	sinks := logging.NewSinks(out, cfg.Level)

	array := cache.NewArray(geometry, finder)
	counters := &stats.Counters{}
	bridge := bus.NewStubBridge(sinks.Verbose)
	controller := coherence.New(array, bridge, counters, sinks)

	dispatcher := trace.NewDispatcher(sinks.Verbose, cfg.AddressBits)
	dispatcher.Register(0, controller.LocalRead)
	dispatcher.Register(2, controller.LocalRead)
	dispatcher.Register(1, controller.LocalWrite)
	dispatcher.Register(3, controller.SnoopRead)
	dispatcher.Register(4, controller.SnoopWrite)
	dispatcher.Register(5, controller.SnoopRWIM)
	dispatcher.Register(6, controller.SnoopInvalidate)
	dispatcher.Register(8, controller.Reset)
	dispatcher.Register(9, controller.Dump)

	return &Engine{
		Array:      array,
		Stats:      counters,
		Controller: controller,
		Dispatcher: dispatcher,
		Sinks:      sinks,
	}, nil
}

// RunFile opens the trace file at path and runs it through the
// dispatcher.
func (e *Engine) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(errdefs.ErrIO, "open trace file %q: %v", path, err)
	}
	defer f.Close()

	return e.Dispatcher.Run(f)
}
