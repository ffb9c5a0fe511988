package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

// Solve finds the real values of v satisfying lhs = rhs. Rational
// roots come back exact, irrational ones as floats, sorted ascending
// with duplicates collapsed. An empty result means no real solution.
// An error means the equation is outside what the solver handles.
func Solve(lhs, rhs Expr, v Sym) ([]Expr, error) {
	e := sub(lhs, rhs).Simplify()
	coeffs, ok := PolyCoeffs(e, v)
	if !ok {
		// Linear equations with symbolic coefficients (x + y = 0 for x)
		// still isolate cleanly.
		if a, b, linear := linearParts(e, v); linear {
			if n, isNum := a.Simplify().(Num); isNum && n.IsZero() {
				return nil, nil
			}
			root := div(neg(b), a).Simplify()
			return []Expr{root}, nil
		}
		return nil, fmt.Errorf("cannot solve for %s algebraically", v.Name)
	}
	coeffs = polyTrim(coeffs)
	if len(coeffs) <= 1 {
		return nil, nil
	}
	roots := polyRootExprs(coeffs)
	sortRoots(roots)
	return dedupeRoots(roots), nil
}

// polyRootExprs extracts the real roots of a polynomial given by its
// rational coefficients, constant first. Rational roots are peeled off
// exactly by the rational root theorem; whatever remains above degree
// two falls back to numeric root finding.
func polyRootExprs(coeffs []*big.Rat) []Expr {
	var roots []Expr

	if coeffs[0].Sign() == 0 {
		roots = append(roots, NewInt(0))
		for len(coeffs) > 1 && coeffs[0].Sign() == 0 {
			coeffs = coeffs[1:]
		}
	}

	for len(coeffs)-1 > 2 {
		found := false
		for _, cand := range rationalCandidates(coeffs) {
			if polyEvalRat(coeffs, cand).Sign() == 0 {
				roots = append(roots, newRatNum(cand, false))
				coeffs = polyTrim(deflate(coeffs, cand))
				found = true
				break
			}
		}
		if !found {
			for _, r := range floatRoots(ratsToFloats(coeffs)) {
				roots = append(roots, NewFloat(snapRoot(coeffs, r)))
			}
			return roots
		}
	}

	switch len(coeffs) {
	case 2:
		root := new(big.Rat).Quo(new(big.Rat).Neg(coeffs[0]), coeffs[1])
		roots = append(roots, newRatNum(root, false))
	case 3:
		roots = append(roots, quadraticRoots(coeffs[0], coeffs[1], coeffs[2])...)
	}
	return roots
}

// quadraticRoots solves a*x^2 + b*x + c = 0 over the reals.
func quadraticRoots(c, b, a *big.Rat) []Expr {
	four := new(big.Rat).SetInt64(4)
	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(four, new(big.Rat).Mul(a, c)))

	twoA := new(big.Rat).Add(a, a)
	negB := new(big.Rat).Neg(b)

	switch {
	case disc.Sign() < 0:
		return nil
	case disc.Sign() == 0:
		return []Expr{newRatNum(new(big.Rat).Quo(negB, twoA), false)}
	}
	if sd, ok := ratSqrt(disc); ok {
		r1 := new(big.Rat).Quo(new(big.Rat).Sub(negB, sd), twoA)
		r2 := new(big.Rat).Quo(new(big.Rat).Add(negB, sd), twoA)
		return []Expr{newRatNum(r1, false), newRatNum(r2, false)}
	}
	bf, _ := b.Float64()
	af, _ := a.Float64()
	df, _ := disc.Float64()
	sq := math.Sqrt(df)
	return []Expr{
		NewFloat((-bf - sq) / (2 * af)),
		NewFloat((-bf + sq) / (2 * af)),
	}
}

func ratsToFloats(coeffs []*big.Rat) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i], _ = c.Float64()
	}
	return out
}

// snapRoot nudges a numeric root onto a nearby integer when the
// polynomial confirms it.
func snapRoot(coeffs []*big.Rat, x float64) float64 {
	r := math.Round(x)
	if math.Abs(x-r) > 1e-8*(1+math.Abs(r)) {
		return x
	}
	exact := new(big.Rat).SetInt64(int64(r))
	if polyEvalRat(coeffs, exact).Sign() == 0 {
		return r
	}
	return x
}

func sortRoots(roots []Expr) {
	sort.SliceStable(roots, func(i, j int) bool {
		return rootValue(roots[i]) < rootValue(roots[j])
	})
}

func rootValue(e Expr) float64 {
	if n, ok := e.(Num); ok {
		return n.Float64()
	}
	v, err := e.Eval(nil)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// dedupeRoots collapses roots that agree numerically, preferring an
// exact representative over a float one. Input must be sorted.
func dedupeRoots(roots []Expr) []Expr {
	if len(roots) < 2 {
		return roots
	}
	out := roots[:1]
	for _, r := range roots[1:] {
		last := out[len(out)-1]
		lv, rv := rootValue(last), rootValue(r)
		if math.Abs(lv-rv) > 1e-9*math.Max(1, math.Abs(rv)) {
			out = append(out, r)
			continue
		}
		lastNum, lastIsNum := last.(Num)
		rNum, rIsNum := r.(Num)
		if lastIsNum && lastNum.approx && rIsNum && !rNum.approx {
			out[len(out)-1] = r
		}
	}
	return out
}
