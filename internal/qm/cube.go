package qm

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/3gx/minterm/internal/truth"
)

// MaxVars is the cube arity ceiling. Cubes pack their constraints into a
// machine word so mergeability and coverage are single xor/popcount
// operations; a table wider than this is rejected up front with a
// ResourceExhausted error rather than silently degrading.
const MaxVars = 64

// Cube is a product term over input variables, i.e. a partial assignment.
// Bit i of Mask set means variable i is constrained, and then bit i of
// Value gives its polarity. A cleared Mask bit is an eliminated
// (don't-care) position. A cube with all variables masked is a minterm.
type Cube struct {
	Value uint64
	Mask  uint64
}

// Literal is one constrained position of a cube, used for ordering and
// rendering. Neg means the variable appears complemented.
type Literal struct {
	Index int
	Neg   bool
}

// MintermOf builds a minterm from a fully specified table row. Rows reach
// here only after Table.Validate, so a don't-care bit is a programmer
// error, not an input error, and panics.
func MintermOf(row []truth.Bit) Cube {
	if len(row) > MaxVars {
		panic(fmt.Sprintf("qm: %d input bits exceeds MaxVars", len(row)))
	}
	var c Cube
	for i, b := range row {
		switch b {
		case truth.On:
			c.Value |= 1 << uint(i)
			c.Mask |= 1 << uint(i)
		case truth.Off:
			c.Mask |= 1 << uint(i)
		default:
			panic(fmt.Sprintf("qm: don't-care at bit %d of a table row", i))
		}
	}
	return c
}

// Mergeable reports whether two cubes constrain the same variables and
// differ in exactly one variable's polarity. Symmetric by construction.
func (c Cube) Mergeable(o Cube) bool {
	if c.Mask != o.Mask {
		return false
	}
	diff := (c.Value ^ o.Value) & c.Mask
	return diff != 0 && diff&(diff-1) == 0
}

// Merge combines two mergeable cubes by eliminating the one variable they
// disagree on. The result covers exactly the union of the operands'
// minterms and is independent of argument order. Callers check Mergeable
// first; merging non-adjacent cubes panics.
func Merge(a, b Cube) Cube {
	if !a.Mergeable(b) {
		panic("qm: merge of non-adjacent cubes")
	}
	diff := (a.Value ^ b.Value) & a.Mask
	return Cube{
		Value: a.Value &^ diff,
		Mask:  a.Mask &^ diff,
	}
}

// Covers reports whether every constraint of c is satisfied by m; m is
// normally a minterm but any cube whose constraints include c's works.
func (c Cube) Covers(m Cube) bool {
	if c.Mask&^m.Mask != 0 {
		return false
	}
	return (c.Value^m.Value)&c.Mask == 0
}

// Matches reports whether a table row's input satisfies every constraint
// of the cube. This is the term-evaluation half of Equation.Eval.
func (c Cube) Matches(input []truth.Bit) bool {
	for i, b := range input {
		bit := uint64(1) << uint(i)
		if c.Mask&bit == 0 {
			continue
		}
		want := truth.Off
		if c.Value&bit != 0 {
			want = truth.On
		}
		if b != want {
			return false
		}
	}
	return true
}

// Constrained returns the number of variables the cube constrains.
func (c Cube) Constrained() int {
	return bits.OnesCount64(c.Mask)
}

// Literals expands the cube into its constrained positions in index order.
func (c Cube) Literals(nvar int) []Literal {
	lits := make([]Literal, 0, c.Constrained())
	for i := 0; i < nvar; i++ {
		bit := uint64(1) << uint(i)
		if c.Mask&bit == 0 {
			continue
		}
		lits = append(lits, Literal{Index: i, Neg: c.Value&bit == 0})
	}
	return lits
}

// Pattern renders the cube as a fixed-width 0/1/x string, variable 0 first.
// Debug/inspection form; equation rendering goes through a Namer.
func (c Cube) Pattern(nvar int) string {
	var sb strings.Builder
	for i := 0; i < nvar; i++ {
		bit := uint64(1) << uint(i)
		switch {
		case c.Mask&bit == 0:
			sb.WriteByte('x')
		case c.Value&bit != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Less orders cubes lexicographically by their (index, polarity) literal
// sequences: earlier constrained index first, positive polarity before
// negated, and a sequence that is a proper prefix sorts first. This is the
// deterministic tie-break used throughout selection and output.
func Less(a, b Cube, nvar int) bool {
	al, bl := a.Literals(nvar), b.Literals(nvar)
	for i := 0; i < len(al) && i < len(bl); i++ {
		if al[i].Index != bl[i].Index {
			return al[i].Index < bl[i].Index
		}
		if al[i].Neg != bl[i].Neg {
			return !al[i].Neg // positive literal sorts before negated
		}
	}
	return len(al) < len(bl)
}
