package cache

import "io"

// Array is an ordered sequence of num_sets cache sets, indexed
// directly by a decoded address index.
type Array struct {
	Geometry *Geometry
	Sets     []*Set
	finder   VictimFinder
}

// NewArray builds an Array of Geometry.NumSets sets, each of
// Geometry.Associativity ways, sharing one VictimFinder.
func NewArray(g *Geometry, finder VictimFinder) *Array {
	a := &Array{Geometry: g, finder: finder}
	a.Sets = make([]*Set, g.NumSets)
	for i := range a.Sets {
		a.Sets[i] = NewSet(g.Associativity, finder)
	}
	return a
}

// Decode splits addr into (tag, index) and returns the owning set.
func (a *Array) Decode(addr uint64) (set *Set, tag uint64, index int) {
	tag, index, _ = a.Geometry.Decode(addr)
	return a.Sets[index], tag, index
}

// Reset re-initializes every set: all lines Invalid, all PLRU bits 0.
// Counters are not touched here; the controller resets them as a
// unit with the array on command 8.
func (a *Array) Reset() {
	for _, s := range a.Sets {
		s.Reset()
	}
}

// Dump iterates sets in index order and, within each, ways in way
// order, writing only non-Invalid lines to sink.
func (a *Array) Dump(sink io.Writer) {
	for i, s := range a.Sets {
		s.PrintValid(sink, i)
	}
}
