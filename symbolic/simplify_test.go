package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simp(t *testing.T, input string) string {
	t.Helper()
	e, err := Parse(input, NewSymtab())
	require.NoError(t, err)
	return e.Simplify().String()
}

func TestSimplifyCollectsLikeTerms(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x + x", "2*x"},
		{"2*x + 3*x - 5*x", "0"},
		{"x*x", "x**2"},
		{"x^2 * x^3", "x**5"},
		{"x/x", "1"},
		{"2*(x + 1) + x", "3*x + 2"},
		{"x - x", "0"},
		{"x*y + y*x", "2*x*y"},
		{"(x + 1) + (x + 2)", "2*x + 3"},
		{"3 + x + 2", "x + 5"},
		{"x^2 + x + x^2", "2*x**2 + x"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, simp(t, tc.input), "input %q", tc.input)
	}
}

func TestSimplifyConstantFolding(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2 + 3", "5"},
		{"2*3", "6"},
		{"2^10", "1024"},
		{"1/3 + 1/6", "1/2"},
		{"2/4", "1/2"},
		{"sqrt(9) + 1", "4"},
		{"cos(0)", "1"},
		{"sin(0)", "0"},
		{"exp(0)", "1"},
		{"log(1)", "0"},
		{"abs(-7)", "7"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, simp(t, tc.input), "input %q", tc.input)
	}
}

func TestSimplifyIdentities(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0*x", "0"},
		{"x^0", "1"},
		{"x^1", "x"},
		{"1*x", "x"},
		{"x + 0", "x"},
		{"(x^2)^3", "x**6"},
		{"(2*x)^2", "4*x**2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, simp(t, tc.input), "input %q", tc.input)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	for _, input := range []string{"x^2 - 5x + 6", "x*sin(x) + 2/x", "(x + 1)*(x + 2)"} {
		e, err := Parse(input, NewSymtab())
		require.NoError(t, err)
		once := e.Simplify()
		twice := once.Simplify()
		assert.Equal(t, once.String(), twice.String(), "input %q", input)
	}
}

func TestPrintFractionsAndPowers(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x/2", "x/2"},
		{"2*x/3", "2*x/3"},
		{"x/y", "x/y"},
		{"1/x", "1/x"},
		{"x/(x + 1)", "x/(x + 1)"},
		{"-5*x", "-5*x"},
		{"x^(1/2)", "x**(1/2)"},
		{"2/(3*y)", "2/(3*y)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, simp(t, tc.input), "input %q", tc.input)
	}
}
