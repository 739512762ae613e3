package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitRatioUndefinedWhenEmpty(t *testing.T) {
	var c Counters
	_, ok := c.HitRatio()
	assert.False(t, ok)
	assert.Contains(t, c.String(), "hit_ratio=n/a")
}

func TestHitRatioComputed(t *testing.T) {
	c := Counters{Reads: 2, Hits: 1, Misses: 1}
	ratio, ok := c.HitRatio()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-9)
	assert.Contains(t, c.String(), "hit_ratio=0.50000")
}

func TestResetZeroesEverything(t *testing.T) {
	c := Counters{Reads: 5, Writes: 3, Hits: 4, Misses: 4}
	c.Reset()
	assert.Equal(t, Counters{}, c)
}
