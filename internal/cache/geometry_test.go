package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkanderson/ECE585-llc/internal/errdefs"
)

func TestNewGeometryDefault(t *testing.T) {
	// 16 MiB, 64 B lines, 16-way -> 16384 sets: the default geometry.
	g, err := NewGeometry(16*1024*1024, 64, 16, 32)
	require.NoError(t, err)
	assert.Equal(t, 16384, g.NumSets)
	assert.Equal(t, uint(6), g.OffsetBits)
	assert.Equal(t, uint(14), g.IndexBits)
	assert.Equal(t, uint(12), g.TagBits)
}

func TestGeometryDecode(t *testing.T) {
	g, err := NewGeometry(16*1024*1024, 64, 16, 32)
	require.NoError(t, err)

	tag, index, offset := g.Decode(0x1000)
	assert.Equal(t, uint64(0), tag)
	assert.Equal(t, 0x1000>>6, index)
	assert.Equal(t, uint64(0), offset)

	addr := uint64(0xABCDE123)
	tag, index, offset = g.Decode(addr)
	assert.Equal(t, addr, (tag<<(g.OffsetBits+g.IndexBits))|(uint64(index)<<g.OffsetBits)|offset)
}

func TestGeometryLineAddressRoundTrip(t *testing.T) {
	g, err := NewGeometry(16*1024*1024, 64, 16, 32)
	require.NoError(t, err)

	tag, index, _ := g.Decode(0xABCDE123)
	line := g.LineAddress(tag, index)
	tag2, index2, offset2 := g.Decode(line)
	assert.Equal(t, tag, tag2)
	assert.Equal(t, index, index2)
	assert.Equal(t, uint64(0), offset2)
}

func TestNewGeometryRejectsNonPowerOfTwoLineSize(t *testing.T) {
	_, err := NewGeometry(1024, 48, 4, 32)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestNewGeometryRejectsNonPowerOfTwoAssociativity(t *testing.T) {
	_, err := NewGeometry(1024, 64, 3, 32)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestNewGeometryRejectsCapacityNotDivisible(t *testing.T) {
	_, err := NewGeometry(1000, 64, 4, 32)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}

func TestNewGeometryRejectsTagOverflow(t *testing.T) {
	_, err := NewGeometry(1<<30, 64, 16, 10)
	require.Error(t, err)
	assert.True(t, errdefs.IsConfig(err))
}
