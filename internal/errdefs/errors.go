// Package errdefs declares the simulator's error kinds and the
// predicates used to tell them apart at the CLI boundary, following
// the sentinel-error-plus-Is* pattern.
package errdefs

import "github.com/pkg/errors"

var (
	// ErrConfig marks an invalid or non-power-of-two geometry,
	// an unsupported protocol, or conflicting verbosity flags.
	ErrConfig = errors.New("invalid configuration")

	// ErrIO marks a trace file that cannot be opened or read.
	ErrIO = errors.New("trace I/O failure")

	// ErrTraceParse marks a malformed trace record. Callers treat
	// this as recoverable: log it, skip the line, keep going.
	ErrTraceParse = errors.New("malformed trace record")

	// ErrInvariant marks a state-machine inconsistency (lookup
	// uniqueness, PLRU arity, MESI legality). Fatal.
	ErrInvariant = errors.New("internal invariant violated")
)

// IsConfig reports whether err (or any error it wraps) is ErrConfig.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsIO reports whether err (or any error it wraps) is ErrIO.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsTraceParse reports whether err (or any error it wraps) is ErrTraceParse.
func IsTraceParse(err error) bool { return errors.Is(err, ErrTraceParse) }

// IsInvariant reports whether err (or any error it wraps) is ErrInvariant.
func IsInvariant(err error) bool { return errors.Is(err, ErrInvariant) }
