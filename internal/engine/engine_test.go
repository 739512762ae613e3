package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkanderson/ECE585-llc/internal/errdefs"
	"github.com/nkanderson/ECE585-llc/internal/logging"
)

func defaultConfig(out *bytes.Buffer) Config {
	return Config{
		Capacity:      16 * 1024 * 1024,
		LineSize:      64,
		Associativity: 16,
		AddressBits:   32,
		Protocol:      MESI,
		Level:         logging.Normal,
		Out:           out,
	}
}

func TestNewRejectsMSI(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig(&buf)
	cfg.Protocol = MSI

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestNewRejectsBadGeometry(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig(&buf)
	cfg.Associativity = 3

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestNewRejectsUnknownReplacementPolicy(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig(&buf)
	cfg.Replacement = "random"

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestEngineRunsTraceAndDumpsStats(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig(&buf)

	e, err := New(cfg)
	require.NoError(t, err)

	trace := strings.NewReader("8 0\n0 0x1000\n1 0x1000\n9 0\n")
	require.NoError(t, e.Dispatcher.Run(trace))

	out := buf.String()
	assert.Contains(t, out, "state=M")
	assert.Contains(t, out, "reads=1 writes=1 hits=1 misses=1")
}

func TestEngineRunFileMissingReturnsIOError(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig(&buf)

	e, err := New(cfg)
	require.NoError(t, err)

	err = e.RunFile("/nonexistent/path/to/trace.txt")
	require.Error(t, err)
	assert.True(t, errdefs.IsIO(err))
}
