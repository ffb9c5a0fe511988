package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"(x + 1)^2", "x**2 + 2*x + 1"},
		{"(x + 1)*(x - 1)", "x**2 - 1"},
		{"2*(x + 3)", "2*x + 6"},
		{"(x + y)^2", "x**2 + 2*x*y + y**2"},
		{"(x + 1)^3", "x**3 + 3*x**2 + 3*x + 1"},
		{"x*(x + 2) + 1", "x**2 + 2*x + 1"},
		{"(x + 1)*(x + 2)*(x + 3)", "x**3 + 6*x**2 + 11*x + 6"},
	}
	tab := NewSymtab()
	for _, tc := range cases {
		e, err := Parse(tc.input, tab)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Expand(e).String(), "expand %q", tc.input)
	}
}

func TestFactor(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x^2 - 5x + 6", "(x - 3)*(x - 2)"},
		{"x^2 - 4", "(x - 2)*(x + 2)"},
		{"x^2 + 3x + 2", "(x + 1)*(x + 2)"},
		{"2x^2 + 6x + 4", "2*(x + 1)*(x + 2)"},
		{"x^2 - 4x + 4", "(x - 2)**2"},
		{"x^3 - 4x^2 + 5x - 2", "(x - 2)*(x - 1)**2"},
		{"x^2 + x", "x*(x + 1)"},
		{"2x + 2", "2*(x + 1)"},
	}
	tab := NewSymtab()
	for _, tc := range cases {
		e, err := Parse(tc.input, tab)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Factor(e).String(), "factor %q", tc.input)
	}
}

func TestFactorIrreducible(t *testing.T) {
	tab := NewSymtab()

	e, err := Parse("x^2 + 1", tab)
	require.NoError(t, err)
	assert.Equal(t, "x**2 + 1", Factor(e).String())

	e, err = Parse("x^2 + x + 1", tab)
	require.NoError(t, err)
	assert.Equal(t, "x**2 + x + 1", Factor(e).String())
}

func TestFactorMixedRemainder(t *testing.T) {
	// One rational root, one irreducible quadratic factor.
	tab := NewSymtab()
	e, err := Parse("x^3 - 2x^2 + x - 2", tab)
	require.NoError(t, err)
	assert.Equal(t, "(x - 2)*(x**2 + 1)", Factor(e).String())
}

func TestFactorNonPolynomial(t *testing.T) {
	tab := NewSymtab()

	e, err := Parse("sin(x) + 1", tab)
	require.NoError(t, err)
	assert.Equal(t, "sin(x) + 1", Factor(e).String())

	e, err = Parse("x^2 - y^2", tab)
	require.NoError(t, err)
	assert.Equal(t, "x**2 - y**2", Factor(e).String(), "multivariate input passes through")
}

func TestExpandThenFactorRoundTrip(t *testing.T) {
	tab := NewSymtab()
	e, err := Parse("(x - 3)*(x + 5)", tab)
	require.NoError(t, err)
	expanded := Expand(e)
	assert.Equal(t, "x**2 + 2*x - 15", expanded.String())
	assert.Equal(t, "(x - 3)*(x + 5)", Factor(expanded).String())
}
