// Package coherence implements the MESI controller: the joint
// transition over (line existence, MESI state, snoop response) for
// every command code, plus the inclusivity and bus side effects that
// go with it.
package coherence

import (
	"fmt"

	"github.com/nkanderson/ECE585-llc/internal/bus"
	"github.com/nkanderson/ECE585-llc/internal/cache"
	"github.com/nkanderson/ECE585-llc/internal/errdefs"
	"github.com/nkanderson/ECE585-llc/internal/logging"
	"github.com/nkanderson/ECE585-llc/internal/stats"
)

// Controller drives the cache array and bus bridge through the MESI
// transitions for each trace command. It is the sole owner of both:
// the array is mutated only through Controller's methods, and
// statistics are updated only here.
type Controller struct {
	Array *cache.Array
	Bus   bus.Bridge
	Stats *stats.Counters
	Sinks *logging.Sinks
}

// New returns a Controller wiring array, bus and stats together.
func New(array *cache.Array, bridge bus.Bridge, counters *stats.Counters, sinks *logging.Sinks) *Controller {
	return &Controller{Array: array, Bus: bridge, Stats: counters, Sinks: sinks}
}

func (c *Controller) debugEnter(name string, addr uint64) {
	if c.Sinks.Level == logging.Debug {
		c.Sinks.Verbose.Debugf("enter %s addr=0x%x", name, addr)
	}
}

func (c *Controller) debugExit(name string, addr uint64) error {
	if c.Sinks.Level == logging.Debug {
		c.Sinks.Verbose.Debugf("exit %s addr=0x%x", name, addr)
		if err := c.Array.CheckInvariants(); err != nil {
			return err
		}
	}
	return nil
}

// LocalRead handles command 0 (L1 data read) and command 2 (L1
// instruction read): identical semantics since the LLC is unified.
func (c *Controller) LocalRead(addr uint64) error {
	c.debugEnter("LocalRead", addr)
	c.Stats.Reads++

	set, tag, index := c.Array.Decode(addr)
	if way, ok := set.Lookup(tag); ok {
		c.Stats.Hits++
		set.Touch(way)
		c.Bus.MessageToCache(bus.SendLine, addr)
		return c.debugExit("LocalRead", addr)
	}

	c.Stats.Misses++
	c.Bus.BusOperation(bus.Read, addr)
	result := c.Bus.GetSnoopResult(addr)

	var state cache.State
	switch result {
	case bus.NoHit:
		state = cache.Exclusive
	case bus.Hit:
		state = cache.Shared
	case bus.HitM:
		state = cache.Exclusive
	}

	if err := c.installAndEvict(set, tag, index, state); err != nil {
		return err
	}
	c.Bus.MessageToCache(bus.SendLine, addr)
	return c.debugExit("LocalRead", addr)
}

// LocalWrite handles command 1 (L1 data write).
func (c *Controller) LocalWrite(addr uint64) error {
	c.debugEnter("LocalWrite", addr)
	c.Stats.Writes++

	set, tag, index := c.Array.Decode(addr)
	if way, ok := set.Lookup(tag); ok {
		c.Stats.Hits++
		set.Touch(way)

		switch set.Lines[way].State {
		case cache.Modified:
			// remain Modified
		case cache.Exclusive:
			set.SetState(way, cache.Modified)
		case cache.Shared:
			c.Bus.BusOperation(bus.Invalidate, addr)
			set.SetState(way, cache.Modified)
		default:
			return fmt.Errorf("%w: local write hit on Invalid way %d", errdefs.ErrInvariant, way)
		}

		c.Bus.MessageToCache(bus.SendLine, addr)
		return c.debugExit("LocalWrite", addr)
	}

	c.Stats.Misses++
	c.Bus.BusOperation(bus.RWIM, addr)
	_ = c.Bus.GetSnoopResult(addr) // consumed; peers are assumed to react appropriately

	if err := c.installAndEvict(set, tag, index, cache.Modified); err != nil {
		return err
	}
	c.Bus.MessageToCache(bus.SendLine, addr)
	return c.debugExit("LocalWrite", addr)
}

// installAndEvict allocates (tag, state) into set and, if a
// non-Invalid victim was evicted, emits the inclusivity/write-back
// side effects for it: always an eviction hint to L1, and a bus
// write-back only when the victim was Modified.
func (c *Controller) installAndEvict(set *cache.Set, tag uint64, index int, state cache.State) error {
	_, victim, hadVictim := set.Allocate(tag, state)
	if !hadVictim {
		return nil
	}

	victimAddr := c.Array.Geometry.LineAddress(victim.Tag, index)
	c.Bus.MessageToCache(bus.EvictLine, victimAddr)
	if victim.State == cache.Modified {
		c.Bus.BusOperation(bus.Write, victimAddr)
	}
	return nil
}

// SnoopRead handles command 3 (snooped read from a peer).
func (c *Controller) SnoopRead(addr uint64) error {
	c.debugEnter("SnoopRead", addr)
	set, tag, _ := c.Array.Decode(addr)

	way, ok := set.Lookup(tag)
	if !ok {
		c.Bus.PutSnoopResult(addr, bus.NoHit)
		return c.debugExit("SnoopRead", addr)
	}

	switch set.Lines[way].State {
	case cache.Modified:
		c.Bus.PutSnoopResult(addr, bus.HitM)
		c.Bus.BusOperation(bus.Write, addr)
		set.SetState(way, cache.Shared)
	case cache.Exclusive:
		c.Bus.PutSnoopResult(addr, bus.Hit)
		set.SetState(way, cache.Shared)
	case cache.Shared:
		c.Bus.PutSnoopResult(addr, bus.Hit)
	default:
		return fmt.Errorf("%w: snoop read matched Invalid way %d", errdefs.ErrInvariant, way)
	}
	return c.debugExit("SnoopRead", addr)
}

// SnoopWrite handles command 4 (snooped write-back). It is always a
// no-op: any line the LLC held for addr was already downgraded or
// invalidated by the preceding snooped read/RWIM/invalidate.
func (c *Controller) SnoopWrite(addr uint64) error {
	c.debugEnter("SnoopWrite", addr)
	return c.debugExit("SnoopWrite", addr)
}

// SnoopRWIM handles command 5 (snooped read-with-intent-to-modify).
func (c *Controller) SnoopRWIM(addr uint64) error {
	c.debugEnter("SnoopRWIM", addr)
	set, tag, _ := c.Array.Decode(addr)

	way, ok := set.Lookup(tag)
	if !ok {
		return c.debugExit("SnoopRWIM", addr)
	}

	switch set.Lines[way].State {
	case cache.Modified:
		c.Bus.BusOperation(bus.Write, addr)
		c.Bus.MessageToCache(bus.InvalidateLine, addr)
		set.Invalidate(way)
	case cache.Exclusive, cache.Shared:
		c.Bus.MessageToCache(bus.InvalidateLine, addr)
		set.Invalidate(way)
	default:
		return fmt.Errorf("%w: snoop RWIM matched Invalid way %d", errdefs.ErrInvariant, way)
	}
	return c.debugExit("SnoopRWIM", addr)
}

// SnoopInvalidate handles command 6 (snooped invalidate). Modified
// and Exclusive lines are treated as authoritative against a stale
// invalidate and are left unchanged.
func (c *Controller) SnoopInvalidate(addr uint64) error {
	c.debugEnter("SnoopInvalidate", addr)
	set, tag, _ := c.Array.Decode(addr)

	way, ok := set.Lookup(tag)
	if !ok {
		return c.debugExit("SnoopInvalidate", addr)
	}

	switch set.Lines[way].State {
	case cache.Shared:
		c.Bus.MessageToCache(bus.InvalidateLine, addr)
		set.Invalidate(way)
	case cache.Modified, cache.Exclusive:
		// no change: this line is authoritative against a stale invalidate.
	default:
		return fmt.Errorf("%w: snoop invalidate matched Invalid way %d", errdefs.ErrInvariant, way)
	}
	return c.debugExit("SnoopInvalidate", addr)
}

// Reset handles command 8: re-initialize every set and zero every
// counter, as a unit.
func (c *Controller) Reset(uint64) error {
	c.debugEnter("Reset", 0)
	c.Array.Reset()
	c.Stats.Reset()
	return c.debugExit("Reset", 0)
}

// Dump handles command 9: print every valid line as (set_index,
// way_index, tag, plru_bits, mesi_state), then the aggregated
// statistics, to the normal stream.
func (c *Controller) Dump(uint64) error {
	c.debugEnter("Dump", 0)
	c.Array.Dump(c.Sinks.Normal.Out)
	fmt.Fprintln(c.Sinks.Normal.Out, c.Stats.String())
	return c.debugExit("Dump", 0)
}
