// Package logging sets up the simulator's two output sinks, normal
// and verbose, at one of three verbosity levels.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Level is one of the simulator's three verbosity levels.
type Level int

const (
	Silent Level = iota
	Normal
	Debug
)

// ParseLevel maps the CLI's mutually exclusive -s/-d flags to a
// Level; the zero value (neither flag set) is Normal.
func ParseLevel(silent, debug bool) Level {
	switch {
	case silent:
		return Silent
	case debug:
		return Debug
	default:
		return Normal
	}
}

// Sinks bundles the normal stream (command-9 dump, final statistics)
// and the verbose stream (bus operations, snoop responses, L1
// messages, and at Debug also per-command entry/exit).
type Sinks struct {
	Level   Level
	Normal  *logrus.Logger
	Verbose *logrus.Logger
}

// NewSinks builds Sinks writing to out for both streams. Verbose is
// silenced entirely at Silent level (its level is set above Fatal so
// no call site needs to branch on Level itself); Debug level additionally
// unlocks Verbose.Debugf call sites.
func NewSinks(out io.Writer, level Level) *Sinks {
	normal := logrus.New()
	normal.SetOutput(out)
	normal.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	normal.SetLevel(logrus.InfoLevel)

	verbose := logrus.New()
	verbose.SetOutput(out)
	verbose.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch level {
	case Silent:
		verbose.SetLevel(logrus.PanicLevel) // bus/message call sites only log at Info+, so nothing logs
	case Debug:
		verbose.SetLevel(logrus.DebugLevel)
	default:
		verbose.SetLevel(logrus.InfoLevel)
	}

	return &Sinks{Level: level, Normal: normal, Verbose: verbose}
}
