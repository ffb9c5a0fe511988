package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCanonical(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"sum ordering", "2 + 3*x", "3*x + 2"},
		{"caret power", "x^2", "x**2"},
		{"double star power", "x**2", "x**2"},
		{"implicit coefficient", "5x", "5*x"},
		{"implicit parens", "2(x + 1)", "2*x + 2"},
		{"implicit adjacency", "x y", "x*y"},
		{"unary minus binds below power", "-x^2", "-x**2"},
		{"negative integer power folds", "2^-3", "1/8"},
		{"right associative power", "2^3^2", "512"},
		{"division folds into coefficient", "1/2x", "x/2"},
		{"function call", "sin(x)", "sin(x)"},
		{"ln normalizes to log", "ln(x)", "log(x)"},
		{"perfect square root", "sqrt(16)", "4"},
		{"decimals stay exact", "0.5*x + 0.5*x", "x"},
		{"quadratic", "x^2 - 5x + 6", "x**2 - 5*x + 6"},
		{"nested parens", "((x + 1))", "x + 1"},
	}
	tab := NewSymtab()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := Parse(tc.input, tab)
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.Simplify().String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tab := NewSymtab()
	for _, input := range []string{"", "   ", "2 +", "(x", "x + * y", "3 @ 4", ")x(", "sin(x"} {
		_, err := Parse(input, tab)
		assert.Error(t, err, "input %q", input)
	}
}

func TestSymtabInterning(t *testing.T) {
	tab := NewSymtab()

	x, ok := tab.Lookup("x")
	require.True(t, ok, "x should be pre-registered")
	assert.Equal(t, "x", x.Name)

	_, ok = tab.Lookup("w")
	assert.False(t, ok)

	_, err := Parse("w + 1", tab)
	require.NoError(t, err)
	w, ok := tab.Lookup("w")
	require.True(t, ok, "parsing should intern new symbols")
	assert.Equal(t, w, tab.Intern("w"))
}

func TestParseSubstAndEval(t *testing.T) {
	tab := NewSymtab()
	e, err := Parse("x^2 + y", tab)
	require.NoError(t, err)

	x := tab.Intern("x")
	y := tab.Intern("y")

	replaced := e.Subst(x, NewInt(3)).Simplify()
	assert.Equal(t, "y + 9", replaced.String())

	v, err := e.Eval(map[Sym]float64{x: 3, y: 1})
	require.NoError(t, err)
	assert.InDelta(t, 10, v, 1e-12)

	_, err = e.Eval(map[Sym]float64{x: 3})
	assert.Error(t, err, "unbound symbol should fail evaluation")
}
