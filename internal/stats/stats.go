// Package stats implements the simulator's four counters and derived
// hit ratio.
package stats

import "fmt"

// Counters tracks reads, writes, hits and misses.
type Counters struct {
	Reads  uint64
	Writes uint64
	Hits   uint64
	Misses uint64
}

// Reset zeroes every counter. Called as a unit with the cache array's
// Reset on command 8.
func (c *Counters) Reset() {
	*c = Counters{}
}

// HitRatio returns Hits/(Hits+Misses) and true, or (0, false) if the
// denominator is zero.
func (c *Counters) HitRatio() (float64, bool) {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0, false
	}
	return float64(c.Hits) / float64(total), true
}

// String renders the counters and hit ratio for the command-9 dump:
// reads, writes, hits, misses, and hit_ratio formatted to five
// fractional digits, or "n/a" when undefined.
func (c *Counters) String() string {
	ratio := "n/a"
	if hr, ok := c.HitRatio(); ok {
		ratio = fmt.Sprintf("%.5f", hr)
	}
	return fmt.Sprintf("reads=%d writes=%d hits=%d misses=%d hit_ratio=%s",
		c.Reads, c.Writes, c.Hits, c.Misses, ratio)
}
