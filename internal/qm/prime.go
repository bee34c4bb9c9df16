package qm

import "sort"

// Limits bounds the combinatorial phases so pathological tables fail with
// ResourceExhausted instead of growing without bound. Zero fields take the
// defaults.
type Limits struct {
	// MaxImplicants caps the number of live cubes at any merge level.
	MaxImplicants int
	// MaxMergeSteps caps the total number of pairwise merge attempts.
	MaxMergeSteps int
}

const (
	DefaultMaxImplicants = 1 << 16
	DefaultMaxMergeSteps = 1 << 26
)

func (l Limits) withDefaults() Limits {
	if l.MaxImplicants <= 0 {
		l.MaxImplicants = DefaultMaxImplicants
	}
	if l.MaxMergeSteps <= 0 {
		l.MaxMergeSteps = DefaultMaxMergeSteps
	}
	return l
}

// primeImplicants runs the merge phase of Quine-McCluskey as an explicit
// level-synchronized fixed point. Level 0 is the minterm set; at each level
// every unordered pair is tested, each mergeable pair emits its merged cube
// into the (deduplicated) next level and marks both operands absorbed, and
// cubes never absorbed at any level are prime. Each level eliminates one
// more variable, so the loop runs at most nvar+1 times.
func primeImplicants(minterms []Cube, nvar int, lim Limits) ([]Cube, error) {
	lim = lim.withDefaults()

	level := make(map[Cube]bool, len(minterms))
	for _, m := range minterms {
		level[m] = true
	}

	steps := 0
	primeSet := make(map[Cube]bool)
	for len(level) > 0 {
		if len(level) > lim.MaxImplicants {
			return nil, exhaustedf("%d implicants at one merge level (limit %d)", len(level), lim.MaxImplicants)
		}
		cubes := make([]Cube, 0, len(level))
		for c := range level {
			cubes = append(cubes, c)
		}
		// Deterministic pair order is not needed for correctness (the next
		// level is a set), only bounded work is.
		next := make(map[Cube]bool)
		absorbed := make(map[Cube]bool)
		for i := 0; i < len(cubes); i++ {
			for j := i + 1; j < len(cubes); j++ {
				steps++
				if steps > lim.MaxMergeSteps {
					return nil, exhaustedf("%d merge steps (limit %d)", steps, lim.MaxMergeSteps)
				}
				if !cubes[i].Mergeable(cubes[j]) {
					continue
				}
				next[Merge(cubes[i], cubes[j])] = true
				absorbed[cubes[i]] = true
				absorbed[cubes[j]] = true
			}
		}
		for _, c := range cubes {
			if !absorbed[c] {
				primeSet[c] = true
			}
		}
		level = next
	}

	primes := make([]Cube, 0, len(primeSet))
	for c := range primeSet {
		primes = append(primes, c)
	}
	sort.Slice(primes, func(i, j int) bool { return Less(primes[i], primes[j], nvar) })
	return primes, nil
}
