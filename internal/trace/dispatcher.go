// Package trace tokenizes a trace file into command records and
// dispatches each to the registered handler for its command code.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nkanderson/ECE585-llc/internal/errdefs"
)

// Handler processes one command's address. The MESI controller
// registers one Handler per supported command code.
type Handler func(addr uint64) error

// Dispatcher maps command codes to controller entry points and drives
// a trace file through them one record at a time, sequentially to
// completion.
type Dispatcher struct {
	handlers    map[int]Handler
	log         *logrus.Logger
	addressBits uint
}

// NewDispatcher returns a Dispatcher that reports malformed or
// unrecognized records to log, rejecting addresses outside
// [0, 2^addressBits).
func NewDispatcher(log *logrus.Logger, addressBits uint) *Dispatcher {
	return &Dispatcher{handlers: make(map[int]Handler), log: log, addressBits: addressBits}
}

// Register binds code to handler. Registering the same code twice
// overwrites the previous binding.
func (d *Dispatcher) Register(code int, handler Handler) {
	d.handlers[code] = handler
}

// Run reads one "<code> <address>" record per line from r. Blank
// lines and lines starting with # are ignored. A line that fails to
// parse, or whose code has no registered handler, is logged and
// skipped; the run continues. Run returns a non-nil error only if a
// handler itself returns one, or if reading r fails outright.
func (d *Dispatcher) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, addr, err := parseRecord(line, d.addressBits)
		if err != nil {
			d.log.Warnf("trace line %d: %v", lineNo, errdefs.ErrTraceParse)
			d.log.Debugf("trace line %d: %q: %v", lineNo, line, err)
			continue
		}

		handler, ok := d.handlers[code]
		if !ok {
			d.log.Warnf("trace line %d: unrecognized command code %d, skipping", lineNo, code)
			continue
		}

		if err := handler(addr); err != nil {
			return fmt.Errorf("trace line %d (code=%d addr=0x%x): %w", lineNo, code, addr, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrIO, err)
	}
	return nil
}

// parseRecord splits "<code> <address>" and validates both fields,
// including that address fits in addressBits.
func parseRecord(line string, addressBits uint) (code int, addr uint64, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: expected \"<code> <address>\", got %q", errdefs.ErrTraceParse, line)
	}

	code, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: command code %q is not an integer", errdefs.ErrTraceParse, fields[0])
	}

	addrField := fields[1]
	base := 10
	if strings.HasPrefix(addrField, "0x") || strings.HasPrefix(addrField, "0X") {
		addrField = addrField[2:]
		base = 16
	}
	addr, err = strconv.ParseUint(addrField, base, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: address %q is not a valid nonnegative integer", errdefs.ErrTraceParse, fields[1])
	}

	if addressBits < 64 && addr >= (uint64(1)<<addressBits) {
		return 0, 0, fmt.Errorf("%w: address %q exceeds the configured %d-bit address space", errdefs.ErrTraceParse, fields[1], addressBits)
	}

	return code, addr, nil
}
