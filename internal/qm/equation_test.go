package qm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3gx/minterm/internal/truth"
)

// exampleTable is the 3-input 2-output system from the package
// documentation: columns a,b,c then x,y.
func exampleTable() *truth.Table {
	return truth.New(
		[][]bool{
			{false, false, false},
			{false, false, true},
			{false, true, false},
			{false, true, true},
			{true, false, false},
			{true, false, true},
			{true, true, false},
			{true, true, true},
		},
		[][]bool{
			{false, true},
			{true, false},
			{true, true},
			{false, false},
			{true, true},
			{false, true},
			{true, true},
			{false, false},
		},
	)
}

func TestMinimizeExample(t *testing.T) {
	eqs, err := Minimize(exampleTable(), Options{OutputNames: []string{"x", "y"}})
	require.NoError(t, err)
	require.Len(t, eqs, 2)

	// x = ac' + a'b'c + bc', y = ab' + c' (terms in tie-break order).
	wantX := []Cube{
		{Value: 0b001, Mask: 0b101}, // ac'
		{Value: 0b100, Mask: 0b111}, // a'b'c
		{Value: 0b010, Mask: 0b110}, // bc'
	}
	wantY := []Cube{
		{Value: 0b001, Mask: 0b011}, // ab'
		{Value: 0b000, Mask: 0b100}, // c'
	}
	if diff := cmp.Diff(wantX, eqs[0].Terms); diff != "" {
		t.Errorf("x terms mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantY, eqs[1].Terms); diff != "" {
		t.Errorf("y terms mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "x", eqs[0].Name)
	assert.Equal(t, "y", eqs[1].Name)
}

// TestMinimizeSoundness checks the core contract: evaluating each equation
// on every table row reproduces that row's output bit exactly.
func TestMinimizeSoundness(t *testing.T) {
	tbl := exampleTable()
	for _, exact := range []bool{false, true} {
		eqs, err := Minimize(tbl, Options{Exact: exact})
		require.NoError(t, err)
		for _, ent := range tbl.Entries {
			for i, eq := range eqs {
				assert.Equal(t, ent.Output[i], eq.Eval(ent.Input),
					"exact=%v output %d input %v", exact, i, ent.Input)
			}
		}
	}
}

func TestMinimizeConstantOutputs(t *testing.T) {
	// One input; first output constant 1, second constant 0.
	tbl := truth.New(
		[][]bool{{false}, {true}},
		[][]bool{{true, false}, {true, false}},
	)
	eqs, err := Minimize(tbl, Options{})
	require.NoError(t, err)
	require.Len(t, eqs, 2)

	// Constant 1 minimizes to a single cube with no constrained positions.
	require.Len(t, eqs[0].Terms, 1)
	assert.Equal(t, Cube{}, eqs[0].Terms[0])
	// Constant 0 has an empty cover.
	assert.Empty(t, eqs[1].Terms)
}

func TestMinimizeSingleTrueRow(t *testing.T) {
	// Output 1 on exactly one of 2^3 rows: the sole prime implicant is the
	// minterm itself and no merge is possible.
	outputs := make([][]bool, 8)
	inputs := make([][]bool, 8)
	for v := 0; v < 8; v++ {
		inputs[v] = []bool{v&1 != 0, v&2 != 0, v&4 != 0}
		outputs[v] = []bool{v == 0b110}
	}
	tbl := truth.New(inputs, outputs)

	eqs, err := Minimize(tbl, Options{})
	require.NoError(t, err)
	require.Len(t, eqs[0].Terms, 1)
	assert.Equal(t, Cube{Value: 0b110, Mask: 0b111}, eqs[0].Terms[0])
}

func TestMinimizeParallelMatchesSerial(t *testing.T) {
	tbl := exampleTable()
	serial, err := Minimize(tbl, Options{OutputNames: []string{"x", "y"}})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		parallel, err := Minimize(tbl, Options{OutputNames: []string{"x", "y"}, Parallel: true})
		require.NoError(t, err)
		assert.Equal(t, serial, parallel)
	}
}

func TestMinimizeRejectsInvalidTable(t *testing.T) {
	cases := []struct {
		name string
		tbl  *truth.Table
	}{
		{
			name: "short table",
			tbl: truth.New(
				[][]bool{{false, false}, {false, true}, {true, false}},
				[][]bool{{true}, {true}, {true}},
			),
		},
		{
			name: "duplicate pattern",
			tbl: truth.New(
				[][]bool{{false}, {false}},
				[][]bool{{true}, {true}},
			),
		},
		{
			name: "empty",
			tbl:  &truth.Table{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Minimize(tc.tbl, Options{})
			require.Error(t, err)
			var structural *truth.StructuralError
			assert.ErrorAs(t, err, &structural)
		})
	}
}

func TestMinimizeRespectsLimits(t *testing.T) {
	tbl := exampleTable()
	_, err := Minimize(tbl, Options{Limits: Limits{MaxMergeSteps: 1}})
	require.Error(t, err)
	var exhausted *ResourceExhausted
	assert.ErrorAs(t, err, &exhausted)
}

func TestOutputNameFallback(t *testing.T) {
	opt := Options{OutputNames: []string{"x"}}
	assert.Equal(t, "x", opt.outputName(0))
	assert.Equal(t, "out1", opt.outputName(1))
}
