package cache

import (
	"fmt"

	"github.com/nkanderson/ECE585-llc/internal/errdefs"
)

// CheckInvariants verifies two per-set invariants: every valid way
// holds a distinct tag, and the packed PLRU bits never exceed the
// width associativity-1 requires. Cheap enough to run after every
// command at Debug verbosity; the engine does not call it at
// Normal/Silent level.
func (s *Set) CheckInvariants() error {
	seen := make(map[uint64]bool, len(s.Lines))
	for way, line := range s.Lines {
		if !line.IsValid() {
			continue
		}
		if seen[line.Tag] {
			return fmt.Errorf("%w: tag 0x%x duplicated in set (way %d)", errdefs.ErrInvariant, line.Tag, way)
		}
		seen[line.Tag] = true
	}

	maxBit := len(s.Lines) - 1
	if maxBit > 0 && s.plruBits>>uint(maxBit) != 0 {
		return fmt.Errorf("%w: plru bits wider than associativity-1=%d", errdefs.ErrInvariant, maxBit)
	}
	return nil
}

// CheckInvariants runs Set.CheckInvariants over every set.
func (a *Array) CheckInvariants() error {
	for i, s := range a.Sets {
		if err := s.CheckInvariants(); err != nil {
			return fmt.Errorf("set %d: %w", i, err)
		}
	}
	return nil
}
