package qm

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultExactLimit is the prime-implicant count above which exact covering
// falls back to the greedy result.
const DefaultExactLimit = 24

// selectCover picks a minimal subset of primes whose covered minterms equal
// the required set. Essential prime implicants are taken unconditionally,
// then the residue is covered greedily (largest marginal cover first, ties
// broken by Less) or, when exact is set and the candidate count is within
// exactLimit, by branch-and-bound search seeded with the greedy bound.
func selectCover(primes, required []Cube, nvar int, exact bool, exactLimit int) ([]Cube, error) {
	if len(required) == 0 {
		return nil, nil
	}
	if exactLimit <= 0 {
		exactLimit = DefaultExactLimit
	}

	// Coverage bookkeeping: which required minterms each prime covers.
	// Merging never reaches outside the minterm set it started from, so a
	// prime's full coverage is exactly its intersection with required.
	covers := make([]mapset.Set[int], len(primes))
	for i, p := range primes {
		covers[i] = mapset.NewThreadUnsafeSet[int]()
		for mi, m := range required {
			if p.Covers(m) {
				covers[i].Add(mi)
			}
		}
	}

	uncovered := mapset.NewThreadUnsafeSet[int]()
	for mi := range required {
		uncovered.Add(mi)
	}

	taken := make([]bool, len(primes))
	var selected []int

	take := func(pi int) {
		taken[pi] = true
		selected = append(selected, pi)
		uncovered = uncovered.Difference(covers[pi])
	}

	// Phase 1: essential prime implicants. A prime is essential when it is
	// the sole cover of some still-required minterm. Scanning minterms in
	// order keeps the result deterministic.
	for changed := true; changed; {
		changed = false
		for mi := range required {
			if !uncovered.Contains(mi) {
				continue
			}
			sole := -1
			for pi := range primes {
				if taken[pi] || !covers[pi].Contains(mi) {
					continue
				}
				if sole >= 0 {
					sole = -1
					break
				}
				sole = pi
			}
			if sole >= 0 {
				take(sole)
				changed = true
			}
		}
	}

	// Phase 2: cover the residue.
	if !uncovered.IsEmpty() {
		remaining := remainingPrimes(taken, covers, uncovered)
		greedy := greedyCover(primes, covers, uncovered.Clone(), remaining, nvar)
		chosen := greedy
		if exact && len(remaining) <= exactLimit {
			if bb := exactCover(covers, uncovered, remaining, len(greedy)); bb != nil {
				chosen = bb
			}
		}
		for _, pi := range chosen {
			take(pi)
		}
	}

	if !uncovered.IsEmpty() {
		return nil, coveragef("%d of %d minterms left uncovered", uncovered.Cardinality(), len(required))
	}

	cover := pruneRedundant(primes, covers, selected, len(required), nvar)
	sort.Slice(cover, func(i, j int) bool { return Less(cover[i], cover[j], nvar) })
	return cover, nil
}

// remainingPrimes lists untaken primes that still cover something, in input
// (Less-sorted) order.
func remainingPrimes(taken []bool, covers []mapset.Set[int], uncovered mapset.Set[int]) []int {
	var out []int
	for pi := range covers {
		if taken[pi] {
			continue
		}
		if covers[pi].Intersect(uncovered).Cardinality() > 0 {
			out = append(out, pi)
		}
	}
	return out
}

// greedyCover repeatedly takes the prime with the largest marginal cover of
// the still-uncovered set, breaking ties toward the Less-smaller cube.
func greedyCover(primes []Cube, covers []mapset.Set[int], uncovered mapset.Set[int], candidates []int, nvar int) []int {
	var out []int
	for !uncovered.IsEmpty() {
		best, bestGain := -1, 0
		for _, pi := range candidates {
			gain := covers[pi].Intersect(uncovered).Cardinality()
			if gain > bestGain || (gain == bestGain && gain > 0 && best >= 0 && Less(primes[pi], primes[best], nvar)) {
				best, bestGain = pi, gain
			}
		}
		if best < 0 {
			break
		}
		out = append(out, best)
		uncovered = uncovered.Difference(covers[best])
	}
	return out
}

// exactCover is a bounded branch-and-bound equivalent of Petrick's method:
// it searches for the smallest candidate subset covering uncovered, seeded
// with the greedy size as the bound. Returns nil when greedy is already
// optimal among explored solutions.
func exactCover(covers []mapset.Set[int], uncovered mapset.Set[int], candidates []int, bound int) []int {
	var best []int
	bestLen := bound

	var search func(uncov mapset.Set[int], cur []int)
	search = func(uncov mapset.Set[int], cur []int) {
		if uncov.IsEmpty() {
			if len(cur) < bestLen {
				bestLen = len(cur)
				best = append([]int(nil), cur...)
			}
			return
		}
		if len(cur)+1 >= bestLen {
			return // even one more pick cannot beat the best
		}
		// Branch on the lowest-index uncovered minterm: every solution must
		// include one of its covers.
		target := -1
		for _, mi := range uncov.ToSlice() {
			if target < 0 || mi < target {
				target = mi
			}
		}
		for _, pi := range candidates {
			if !covers[pi].Contains(target) {
				continue
			}
			search(uncov.Difference(covers[pi]), append(cur, pi))
		}
	}
	search(uncovered, nil)
	return best
}

// pruneRedundant drops any selected prime whose coverage is already
// supplied by the rest of the selection, so that no proper subset of the
// final cover still covers the required set. Larger cubes are given
// priority to survive.
func pruneRedundant(primes []Cube, covers []mapset.Set[int], selected []int, nreq int, nvar int) []Cube {
	order := append([]int(nil), selected...)
	// Drop narrow cubes first so the widest terms anchor the cover.
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if ca, cb := covers[a].Cardinality(), covers[b].Cardinality(); ca != cb {
			return ca < cb
		}
		return Less(primes[b], primes[a], nvar)
	})

	kept := make(map[int]bool, len(selected))
	for _, pi := range selected {
		kept[pi] = true
	}
	for _, pi := range order {
		without := mapset.NewThreadUnsafeSet[int]()
		for other := range kept {
			if other != pi {
				without = without.Union(covers[other])
			}
		}
		if without.Cardinality() == nreq {
			delete(kept, pi)
		}
	}

	out := make([]Cube, 0, len(kept))
	for pi := range kept {
		out = append(out, primes[pi])
	}
	return out
}
