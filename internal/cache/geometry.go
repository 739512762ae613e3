// Package cache implements the set-associative tag/state store, the
// tree-PLRU replacement policy, and the address decoder that the MESI
// controller drives.
package cache

import (
	"github.com/pkg/errors"

	"github.com/nkanderson/ECE585-llc/internal/errdefs"
)

// Geometry is the immutable address decoder derived from a cache's
// capacity, line size and associativity. It splits an address into
// (tag, index, offset) and never mutates after construction.
type Geometry struct {
	Capacity      uint64
	LineSize      uint64
	Associativity int
	AddressBits   uint

	NumSets    int
	OffsetBits uint
	IndexBits  uint
	TagBits    uint
}

// NewGeometry validates capacity/lineSize/associativity and derives
// NumSets plus the bit widths used by Decode. It returns a
// ConfigError-wrapped error if the geometry is not power-of-two
// consistent, or if lineSize is not one of 4/16/32/64/128 or
// associativity not one of 1/2/4/8/16/32.
func NewGeometry(capacity, lineSize uint64, associativity int, addressBits uint) (*Geometry, error) {
	if !isPowerOfTwo(lineSize) {
		return nil, errors.Wrapf(errdefs.ErrConfig, "line size %d is not a power of two", lineSize)
	}
	if lineSize < 4 || lineSize == 8 || lineSize > 128 {
		return nil, errors.Wrapf(errdefs.ErrConfig, "line size %d is not one of 4/16/32/64/128", lineSize)
	}
	if associativity <= 0 || !isPowerOfTwo(uint64(associativity)) {
		return nil, errors.Wrapf(errdefs.ErrConfig, "associativity %d is not a positive power of two", associativity)
	}
	if associativity > 32 {
		return nil, errors.Wrapf(errdefs.ErrConfig, "associativity %d is not one of 1/2/4/8/16/32", associativity)
	}
	setBytes := lineSize * uint64(associativity)
	if setBytes == 0 || capacity%setBytes != 0 {
		return nil, errors.Wrapf(errdefs.ErrConfig,
			"capacity %d is not evenly divisible by line_size*associativity %d", capacity, setBytes)
	}
	numSets := capacity / setBytes
	if numSets == 0 || !isPowerOfTwo(numSets) {
		return nil, errors.Wrapf(errdefs.ErrConfig, "derived num_sets %d is not a positive power of two", numSets)
	}

	offsetBits := log2(lineSize)
	indexBits := log2(numSets)
	if offsetBits+indexBits >= addressBits {
		return nil, errors.Wrapf(errdefs.ErrConfig,
			"offset_bits(%d)+index_bits(%d) leaves no room for a tag in a %d-bit address",
			offsetBits, indexBits, addressBits)
	}

	return &Geometry{
		Capacity:      capacity,
		LineSize:      lineSize,
		Associativity: associativity,
		AddressBits:   addressBits,
		NumSets:       int(numSets),
		OffsetBits:    offsetBits,
		IndexBits:     indexBits,
		TagBits:       addressBits - offsetBits - indexBits,
	}, nil
}

// Decode splits address a into (tag, index, offset).
func (g *Geometry) Decode(a uint64) (tag uint64, index int, offset uint64) {
	offsetMask := (uint64(1) << g.OffsetBits) - 1
	indexMask := (uint64(1) << g.IndexBits) - 1

	offset = a & offsetMask
	index = int((a >> g.OffsetBits) & indexMask)
	tag = a >> (g.OffsetBits + g.IndexBits)
	return
}

// LineAddress reconstructs the base address of line (tag, index),
// i.e. the address with a zero block offset. Used to report eviction
// and write-back addresses.
func (g *Geometry) LineAddress(tag uint64, index int) uint64 {
	return (tag << (g.OffsetBits + g.IndexBits)) | (uint64(index) << g.OffsetBits)
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// log2 returns floor(log2(n)) for a power-of-two n.
func log2(n uint64) uint {
	var bits uint
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}
