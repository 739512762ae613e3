package cache

// TreePLRUFinder is the default VictimFinder: it asks the set to walk
// its own tree-PLRU bits.
type TreePLRUFinder struct{}

// NewTreePLRUFinder returns the tree-PLRU victim finder.
func NewTreePLRUFinder() *TreePLRUFinder {
	return &TreePLRUFinder{}
}

// FindVictim delegates to Set's own tree walk.
func (f *TreePLRUFinder) FindVictim(set *Set) int {
	return set.FindVictim()
}
