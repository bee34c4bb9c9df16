package qm

import (
	"sort"

	"github.com/3gx/minterm/internal/truth"
)

// ShareStrategy selects how the cross-output sharing pass trades shared
// guards against per-output covers. Whether hoisting a common cube beats
// keeping covers independent is inherently heuristic, so the choice is the
// caller's, not the engine's.
type ShareStrategy int

const (
	// ShareNone leaves every equation's cover untouched.
	ShareNone ShareStrategy = iota
	// ShareMax hoists every cube that appears in two or more covers.
	ShareMax
	// ShareMinLiterals hoists only where the rewrite reduces the total
	// literal count, i.e. skips guards that constrain nothing.
	ShareMinLiterals
)

// SharedTerm is a cube hoisted out of two or more covers, with the output
// columns it guards.
type SharedTerm struct {
	Guard   Cube
	Outputs []int
}

// SharedCover is the result of the sharing pass: hoisted guards plus each
// equation's residual terms. Semantics are unchanged: an output is 1 iff
// one of its residual terms matches or a guard listing it matches.
type SharedCover struct {
	Shared   []SharedTerm
	Residual []Equation
}

// Eval computes one output column of the shared form.
func (s SharedCover) Eval(out int, input []truth.Bit) bool {
	if s.Residual[out].Eval(input) {
		return true
	}
	for _, sh := range s.Shared {
		if !sh.Guard.Matches(input) {
			continue
		}
		for _, o := range sh.Outputs {
			if o == out {
				return true
			}
		}
	}
	return false
}

// Share rewrites finished covers into a shared/residual split. It runs
// after every equation's cover is final (the minimization barrier) and only
// moves terms between lists; it never merges or re-selects, so soundness of
// each output is preserved by construction.
func Share(eqs []Equation, strategy ShareStrategy) SharedCover {
	res := SharedCover{Residual: make([]Equation, len(eqs))}
	for i, eq := range eqs {
		res.Residual[i] = eq
		res.Residual[i].Terms = append([]Cube(nil), eq.Terms...)
	}
	if strategy == ShareNone {
		return res
	}

	nvar := 0
	if len(eqs) > 0 {
		nvar = eqs[0].Vars
	}

	// Count cover membership per cube. A cover never repeats a cube, so a
	// plain per-equation scan is enough.
	owners := make(map[Cube][]int)
	for i, eq := range res.Residual {
		for _, t := range eq.Terms {
			owners[t] = append(owners[t], i)
		}
	}

	guards := make([]Cube, 0, len(owners))
	for c, eqIdxs := range owners {
		if len(eqIdxs) < 2 {
			continue
		}
		if strategy == ShareMinLiterals && c.Constrained() == 0 {
			// Hoisting an unconstrained guard saves no literals.
			continue
		}
		guards = append(guards, c)
	}
	sort.Slice(guards, func(i, j int) bool { return Less(guards[i], guards[j], nvar) })

	for _, g := range guards {
		res.Shared = append(res.Shared, SharedTerm{Guard: g, Outputs: owners[g]})
		for _, ei := range owners[g] {
			res.Residual[ei].Terms = removeCube(res.Residual[ei].Terms, g)
		}
	}
	return res
}

func removeCube(terms []Cube, c Cube) []Cube {
	out := terms[:0]
	for _, t := range terms {
		if t != c {
			out = append(out, t)
		}
	}
	return out
}
