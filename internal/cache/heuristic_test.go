package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicFinderFallsBackToPLRUWhenNotConfident(t *testing.T) {
	s := NewSet(4, NewHeuristicFinder())
	for i := 0; i < 4; i++ {
		s.Allocate(uint64(i), Exclusive)
	}
	// All weights start at zero, so every score is zero: never
	// confident, so every victim decision defers to tree-PLRU.
	way, _, hadVictim := s.Allocate(4, Modified)
	assert.True(t, hadVictim)
	assert.GreaterOrEqual(t, way, 0)
	assert.Less(t, way, 4)
}

func TestHeuristicFinderTrainAdjustsWeights(t *testing.T) {
	f := NewHeuristicFinder()
	before := f.score(0x1)
	f.Train(0x1, false) // not reused -> nudge weights up
	after := f.score(0x1)
	assert.Greater(t, after, before)
}
