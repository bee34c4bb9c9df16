package qm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEquation(t *testing.T) {
	eq := Equation{
		Name: "x",
		Vars: 3,
		Terms: []Cube{
			{Value: 0b001, Mask: 0b101}, // ac'
			{Value: 0b100, Mask: 0b111}, // a'b'c
			{Value: 0b010, Mask: 0b110}, // bc'
		},
	}
	got, err := eq.Render(Names("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, "x = ac' + a'b'c + bc'", got)
}

func TestRenderArbitraryAlphabet(t *testing.T) {
	// Names are whatever the caller supplies, not a fixed letter set.
	eq := Equation{
		Name:  "REQ_GL",
		Vars:  2,
		Terms: []Cube{{Value: 0b01, Mask: 0b11}},
	}
	got, err := eq.Render(Names("HAVE_OGL", "HAVE_EGL"))
	require.NoError(t, err)
	assert.Equal(t, "REQ_GL = HAVE_OGLHAVE_EGL'", got)
}

func TestRenderConstants(t *testing.T) {
	one := Equation{Name: "x", Vars: 2, Terms: []Cube{{}}}
	got, err := one.Render(Names("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1", got)

	zero := Equation{Name: "y", Vars: 2}
	got, err = zero.Render(Names("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "y = 0", got)
}

func TestRenderMissingNameIsResourceExhausted(t *testing.T) {
	eq := Equation{
		Name:  "x",
		Vars:  3,
		Terms: []Cube{{Value: 0b100, Mask: 0b100}},
	}
	_, err := eq.Render(Names("a", "b")) // no name for variable 2
	require.Error(t, err)
	var exhausted *ResourceExhausted
	assert.ErrorAs(t, err, &exhausted)
}

func TestRenderSharedCover(t *testing.T) {
	shared := Share(narrativeEquations(), ShareMax)
	got, err := shared.Render(Names("a", "b", "c"))
	require.NoError(t, err)
	want := "if ab'c': x, y\n" +
		"if bc': x, y\n" +
		"x = a'b'c\n" +
		"y = a'b'c' + ab'c\n"
	assert.Equal(t, want, got)
}
