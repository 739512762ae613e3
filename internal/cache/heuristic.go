package cache

// HeuristicFinder is an optional, non-default VictimFinder based on
// the perceptron-style reuse predictor from "Perceptron Learning for
// Reuse Prediction" (MICRO 2016): a weight table keyed by tag bits,
// scored and thresholded to decide whether a way's contents are
// likely to be reused. It exists purely as a pluggable alternative
// behind --replacement=heuristic.
type HeuristicFinder struct {
	weights   [32]int32
	threshold int32
	theta     int32
	learnRate int32
	fallback  VictimFinder
}

// NewHeuristicFinder returns a heuristic finder seeded with the MICRO
// 2016 paper's parameters (threshold=0, theta=32, learning rate=1),
// falling back to tree-PLRU when the weighted sum isn't confident.
func NewHeuristicFinder() *HeuristicFinder {
	return &HeuristicFinder{
		threshold: 0,
		theta:     32,
		learnRate: 1,
		fallback:  NewTreePLRUFinder(),
	}
}

// FindVictim scores each valid way's tag against the weight table and
// evicts the highest-scoring (least likely to be reused) way when the
// score is confident; otherwise it defers to tree-PLRU.
func (f *HeuristicFinder) FindVictim(set *Set) int {
	best := -1
	var bestSum int32
	confident := false

	for way := range set.Lines {
		sum := f.score(set.Lines[way].Tag)
		if abs32(sum) >= f.theta {
			confident = true
		}
		if best == -1 || sum > bestSum {
			best, bestSum = way, sum
		}
	}

	if !confident {
		return f.fallback.FindVictim(set)
	}
	return best
}

// Train adjusts the weight table toward the observed outcome:
// reused=true nudges weights down (favor keeping tag-like lines),
// reused=false nudges them up. Callers outside the cache package may
// invoke this after observing a hit or a costly eviction; the engine
// does not call it by default.
func (f *HeuristicFinder) Train(tag uint64, reused bool) {
	sum := f.score(tag)
	predictNoReuse := sum >= f.threshold
	if predictNoReuse == !reused && abs32(sum) >= f.theta {
		return
	}

	delta := f.learnRate
	if reused {
		delta = -delta
	}
	for i := 0; i < 32; i++ {
		if (tag>>uint(i))&1 == 1 {
			f.weights[i] += delta
		}
	}
}

func (f *HeuristicFinder) score(tag uint64) int32 {
	var sum int32
	for i := 0; i < 32; i++ {
		if (tag>>uint(i))&1 == 1 {
			sum += f.weights[i]
		}
	}
	return sum
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
