package symbolic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solveStrings(t *testing.T, lhs, rhs string) []string {
	t.Helper()
	tab := NewSymtab()
	l, err := Parse(lhs, tab)
	require.NoError(t, err)
	r, err := Parse(rhs, tab)
	require.NoError(t, err)
	roots, err := Solve(l, r, tab.Intern("x"))
	require.NoError(t, err)
	out := make([]string, len(roots))
	for i, root := range roots {
		out[i] = root.String()
	}
	return out
}

func TestSolveLinear(t *testing.T) {
	assert.Equal(t, []string{"-2"}, solveStrings(t, "x + 2", "0"))
	assert.Equal(t, []string{"5/2"}, solveStrings(t, "2*x", "5"))
	assert.Equal(t, []string{"4"}, solveStrings(t, "3*x - 2", "x + 6"))
}

func TestSolveQuadratic(t *testing.T) {
	assert.Equal(t, []string{"2", "3"}, solveStrings(t, "x^2 - 5x + 6", "0"))
	assert.Equal(t, []string{"2"}, solveStrings(t, "x^2 - 4x + 4", "0"), "double root collapses")
	assert.Equal(t, []string{"-2", "2"}, solveStrings(t, "x^2", "4"))
	assert.Empty(t, solveStrings(t, "x^2 + 1", "0"), "no real roots")
}

func TestSolveQuadraticIrrational(t *testing.T) {
	tab := NewSymtab()
	l, err := Parse("x^2 - 2", tab)
	require.NoError(t, err)
	roots, err := Solve(l, NewInt(0), tab.Intern("x"))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.InDelta(t, -math.Sqrt2, rootValue(roots[0]), 1e-9)
	assert.InDelta(t, math.Sqrt2, rootValue(roots[1]), 1e-9)
}

func TestSolveCubic(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, solveStrings(t, "x^3 - 6x^2 + 11x - 6", "0"))
	assert.Equal(t, []string{"0", "1"}, solveStrings(t, "x^3 - x^2", "0"))
}

func TestSolveQuarticNumericFallback(t *testing.T) {
	// x^4 - 2x^2 - 1 has no rational roots; the two real ones are
	// +-sqrt(1 + sqrt(2)).
	tab := NewSymtab()
	l, err := Parse("x^4 - 2x^2 - 1", tab)
	require.NoError(t, err)
	roots, err := Solve(l, NewInt(0), tab.Intern("x"))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	want := math.Sqrt(1 + math.Sqrt2)
	assert.InDelta(t, -want, rootValue(roots[0]), 1e-6)
	assert.InDelta(t, want, rootValue(roots[1]), 1e-6)
}

func TestSolveDegenerate(t *testing.T) {
	assert.Empty(t, solveStrings(t, "0", "0"), "identity has no finite root set")
	assert.Empty(t, solveStrings(t, "x", "x + 1"), "contradiction has no roots")
	assert.Equal(t, []string{"0"}, solveStrings(t, "x^2", "0"))
}

func TestSolveSymbolicLinear(t *testing.T) {
	assert.Equal(t, []string{"-y"}, solveStrings(t, "x + y", "0"))
	assert.Equal(t, []string{"y/2"}, solveStrings(t, "2*x - y", "0"))
}

func TestSolveUnsupported(t *testing.T) {
	tab := NewSymtab()
	l, err := Parse("sin(x)", tab)
	require.NoError(t, err)
	_, err = Solve(l, NewInt(0), tab.Intern("x"))
	assert.Error(t, err)
}
