package truth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayCodeShape(t *testing.T) {
	for n := 1; n <= 6; n++ {
		code := GrayCode(n)
		require.Len(t, code, 1<<uint(n), "n=%d", n)
		for _, row := range code {
			assert.Len(t, row, n)
		}
	}
}

func TestGrayCodeAdjacency(t *testing.T) {
	code := GrayCode(4)
	for i := range code {
		next := code[(i+1)%len(code)] // the code is cyclic
		diff := 0
		for j := range code[i] {
			if code[i][j] != next[j] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "rows %d and %d", i, (i+1)%len(code))
	}
}

func TestGrayCodeDistinctRows(t *testing.T) {
	code := GrayCode(5)
	seen := make(map[string]bool)
	for _, row := range code {
		key := ""
		for _, b := range row {
			if b {
				key += "1"
			} else {
				key += "0"
			}
		}
		assert.False(t, seen[key], "row %s repeats", key)
		seen[key] = true
	}
}

func TestGrayCodeDegenerate(t *testing.T) {
	assert.Nil(t, GrayCode(0))
	assert.Nil(t, GrayCode(-3))
}

func TestGrayCodeTwoBits(t *testing.T) {
	want := [][]bool{
		{false, false},
		{false, true},
		{true, true},
		{true, false},
	}
	assert.Equal(t, want, GrayCode(2))
}
