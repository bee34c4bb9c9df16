package qm

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/3gx/minterm/internal/truth"
)

// Equation is the minimized cover for one output bit: an ordered list of
// cubes whose OR reproduces the output column exactly. Terms and their
// order are part of the observable contract; rendering is not.
type Equation struct {
	// Index is the output column this equation computes.
	Index int
	// Name is the output's display name.
	Name string
	// Vars is the input arity the terms range over.
	Vars int
	// Terms is the selected cover. Empty means the output is constant 0;
	// a single zero-constraint cube means constant 1.
	Terms []Cube
}

// Eval computes the equation on one input row: OR over terms, each term
// true iff every constrained bit matches.
func (e Equation) Eval(input []truth.Bit) bool {
	for _, t := range e.Terms {
		if t.Matches(input) {
			return true
		}
	}
	return false
}

// Options configures Minimize.
type Options struct {
	// OutputNames supplies display names per output column; missing entries
	// fall back to a positional name.
	OutputNames []string
	// Exact enables branch-and-bound cover selection, bounded by ExactLimit
	// prime implicants (DefaultExactLimit when zero); beyond the bound the
	// greedy cover is used as-is.
	Exact      bool
	ExactLimit int
	// Parallel minimizes output columns concurrently. Each column works on
	// the immutable table snapshot and writes only its own slot, so results
	// are identical to the serial run.
	Parallel bool
	// Limits bounds the merge phase; zero fields take defaults.
	Limits Limits
}

func (o Options) outputName(i int) string {
	if i < len(o.OutputNames) && o.OutputNames[i] != "" {
		return o.OutputNames[i]
	}
	return fmt.Sprintf("out%d", i)
}

// Minimize converts a validated truth table into one minimized Equation per
// output column: extract the minterms where the column is 1, merge them to
// prime implicants, and select a minimal cover. The table must satisfy the
// structural invariants (Table.Validate); violations surface as
// truth.StructuralError before any equation is produced.
func Minimize(tbl *truth.Table, opt Options) ([]Equation, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	nvar := tbl.Inputs()
	if nvar > MaxVars {
		return nil, exhaustedf("%d input variables (limit %d)", nvar, MaxVars)
	}

	eqs := make([]Equation, tbl.Outputs())
	build := func(out int) error {
		eq, err := minimizeOutput(tbl, out, nvar, opt)
		if err != nil {
			return errors.Wrapf(err, "output %s", opt.outputName(out))
		}
		eqs[out] = eq
		return nil
	}

	if opt.Parallel {
		var g errgroup.Group
		for out := 0; out < tbl.Outputs(); out++ {
			out := out
			g.Go(func() error { return build(out) })
		}
		// Wait is also the barrier required before any cross-output pass.
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for out := 0; out < tbl.Outputs(); out++ {
			if err := build(out); err != nil {
				return nil, err
			}
		}
	}
	return eqs, nil
}

func minimizeOutput(tbl *truth.Table, out, nvar int, opt Options) (Equation, error) {
	eq := Equation{Index: out, Name: opt.outputName(out), Vars: nvar}

	minterms := mintermsOf(tbl, out)
	if len(minterms) == 0 {
		return eq, nil // constant 0
	}

	primes, err := primeImplicants(minterms, nvar, opt.Limits)
	if err != nil {
		return eq, err
	}
	cover, err := selectCover(primes, minterms, nvar, opt.Exact, opt.ExactLimit)
	if err != nil {
		return eq, err
	}
	eq.Terms = cover

	// Completeness is checked by selection; soundness holds because merging
	// never reaches outside the minterm set. Re-check both against the
	// table so a broken invariant surfaces here instead of in a caller.
	for _, ent := range tbl.Entries {
		if eq.Eval(ent.Input) != ent.Output[out] {
			return eq, coveragef("cover disagrees with table row %v", ent.Input)
		}
	}
	return eq, nil
}

// mintermsOf builds one minterm per table row whose out-th output bit is 1.
func mintermsOf(tbl *truth.Table, out int) []Cube {
	var minterms []Cube
	for _, ent := range tbl.Entries {
		if !ent.Output[out] {
			continue
		}
		minterms = append(minterms, MintermOf(ent.Input))
	}
	return minterms
}
