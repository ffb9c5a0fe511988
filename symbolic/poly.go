package symbolic

import (
	"math"
	"math/big"
)

// PolyCoeffs extracts the rational coefficients of e viewed as a
// univariate polynomial in v, constant term first. It fails when e
// involves v non-polynomially or carries other free symbols.
func PolyCoeffs(e Expr, v Sym) ([]*big.Rat, bool) {
	switch t := e.(type) {
	case Num:
		return []*big.Rat{new(big.Rat).Set(t.rat)}, true
	case Sym:
		if t == v {
			return []*big.Rat{new(big.Rat), big.NewRat(1, 1)}, true
		}
		return nil, false
	case Add:
		acc := []*big.Rat{}
		for _, term := range t.Terms {
			c, ok := PolyCoeffs(term, v)
			if !ok {
				return nil, false
			}
			acc = polyAdd(acc, c)
		}
		return acc, true
	case Mul:
		acc := []*big.Rat{big.NewRat(1, 1)}
		for _, f := range t.Factors {
			c, ok := PolyCoeffs(f, v)
			if !ok {
				return nil, false
			}
			acc = polyMul(acc, c)
		}
		return acc, true
	case Pow:
		n, ok := t.Exp.(Num)
		if !ok || !n.IsInt() || n.Sign() < 0 || n.Int64() > 64 {
			return nil, false
		}
		base, ok := PolyCoeffs(t.Base, v)
		if !ok {
			return nil, false
		}
		acc := []*big.Rat{big.NewRat(1, 1)}
		for i := int64(0); i < n.Int64(); i++ {
			acc = polyMul(acc, base)
		}
		return acc, true
	case Call:
		return nil, false
	}
	return nil, false
}

func polyAdd(a, b []*big.Rat) []*big.Rat {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
	}
	return out
}

func polyMul(a, b []*big.Rat) []*big.Rat {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]*big.Rat, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, ca := range a {
		if ca.Sign() == 0 {
			continue
		}
		for j, cb := range b {
			term := new(big.Rat).Mul(ca, cb)
			out[i+j].Add(out[i+j], term)
		}
	}
	return out
}

// polyTrim drops zero high-order coefficients.
func polyTrim(coeffs []*big.Rat) []*big.Rat {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].Sign() == 0 {
		n--
	}
	return coeffs[:n]
}

// polyEvalRat evaluates the polynomial at x exactly via Horner.
func polyEvalRat(coeffs []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, coeffs[i])
	}
	return acc
}

func polyEvalFloat(coeffs []float64, x float64) float64 {
	acc := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}
	return acc
}

// deflate divides the polynomial by (x - root); the root must be exact.
func deflate(coeffs []*big.Rat, root *big.Rat) []*big.Rat {
	n := len(coeffs)
	if n < 2 {
		return nil
	}
	out := make([]*big.Rat, n-1)
	carry := new(big.Rat)
	for i := n - 1; i >= 1; i-- {
		carry = new(big.Rat).Add(coeffs[i], new(big.Rat).Mul(carry, root))
		out[i-1] = carry
	}
	return out
}

// linearParts decomposes e as a*v + b with a and b free of v. Unlike
// PolyCoeffs the parts may contain other symbols, which lets linear
// equations with symbolic coefficients solve exactly.
func linearParts(e Expr, v Sym) (Expr, Expr, bool) {
	if freeOf(e, v) {
		return zero, e, true
	}
	switch t := e.(type) {
	case Sym:
		return one, zero, true
	case Add:
		as := make([]Expr, 0, len(t.Terms))
		bs := make([]Expr, 0, len(t.Terms))
		for _, term := range t.Terms {
			a, b, ok := linearParts(term, v)
			if !ok {
				return nil, nil, false
			}
			as = append(as, a)
			bs = append(bs, b)
		}
		return Add{Terms: as}, Add{Terms: bs}, true
	case Mul:
		depIdx := -1
		for i, f := range t.Factors {
			if !freeOf(f, v) {
				if depIdx >= 0 {
					return nil, nil, false
				}
				depIdx = i
			}
		}
		fa, fb, ok := linearParts(t.Factors[depIdx], v)
		if !ok {
			return nil, nil, false
		}
		rest := make([]Expr, 0, len(t.Factors)-1)
		for i, f := range t.Factors {
			if i != depIdx {
				rest = append(rest, f)
			}
		}
		a := Mul{Factors: append(append([]Expr{}, rest...), fa)}
		b := Mul{Factors: append(append([]Expr{}, rest...), fb)}
		return a, b, true
	}
	return nil, nil, false
}

// rationalCandidates lists the possible rational roots p/q of an
// integer polynomial by the rational root theorem. Oversized leading
// or constant terms disable the search.
func rationalCandidates(coeffs []*big.Rat) []*big.Rat {
	ints, ok := scaleToInts(coeffs)
	if !ok {
		return nil
	}
	c0, cn := ints[0], ints[len(ints)-1]
	ps, ok := smallDivisors(c0)
	if !ok {
		return nil
	}
	qs, ok := smallDivisors(cn)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []*big.Rat
	for _, p := range ps {
		for _, q := range qs {
			for _, sign := range []int64{1, -1} {
				cand := big.NewRat(sign*p, q)
				key := cand.RatString()
				if !seen[key] {
					seen[key] = true
					out = append(out, cand)
				}
			}
		}
	}
	return out
}

// scaleToInts clears denominators, producing integer coefficients.
func scaleToInts(coeffs []*big.Rat) ([]*big.Int, bool) {
	lcm := big.NewInt(1)
	for _, c := range coeffs {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm = new(big.Int).Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		scaled := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcm))
		if !scaled.IsInt() {
			return nil, false
		}
		out[i] = scaled.Num()
	}
	return out, true
}

// smallDivisors returns the positive divisors of |n|, refusing values
// too large to factor by trial division.
func smallDivisors(n *big.Int) ([]int64, bool) {
	if !n.IsInt64() {
		return nil, false
	}
	v := n.Int64()
	if v < 0 {
		v = -v
	}
	if v == 0 {
		return []int64{1}, true
	}
	if v > 1_000_000_000 {
		return nil, false
	}
	var out []int64
	for d := int64(1); d*d <= v; d++ {
		if v%d == 0 {
			out = append(out, d)
			if other := v / d; other != d {
				out = append(out, other)
			}
		}
	}
	return out, true
}

// floatRoots locates real roots of the polynomial numerically: grid
// scan over the Cauchy bound, bisection on sign changes. Roots of even
// multiplicity that never cross zero can be missed.
func floatRoots(coeffs []float64) []float64 {
	n := len(coeffs)
	if n < 2 {
		return nil
	}
	an := coeffs[n-1]
	bound := 0.0
	for _, c := range coeffs[:n-1] {
		if r := math.Abs(c / an); r > bound {
			bound = r
		}
	}
	bound++

	const steps = 8192
	var roots []float64
	prevX := -bound
	prevF := polyEvalFloat(coeffs, prevX)
	if prevF == 0 {
		roots = append(roots, prevX)
	}
	for i := 1; i <= steps; i++ {
		x := -bound + float64(i)*(2*bound/steps)
		f := polyEvalFloat(coeffs, x)
		switch {
		case f == 0:
			roots = append(roots, x)
		case prevF != 0 && (prevF < 0) != (f < 0):
			roots = append(roots, bisectRoot(coeffs, prevX, x))
		}
		prevX, prevF = x, f
	}
	return dedupeSorted(roots)
}

func bisectRoot(coeffs []float64, lo, hi float64) float64 {
	flo := polyEvalFloat(coeffs, lo)
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fm := polyEvalFloat(coeffs, mid)
		if fm == 0 {
			return mid
		}
		if (flo < 0) != (fm < 0) {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return (lo + hi) / 2
}

func dedupeSorted(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		last := out[len(out)-1]
		if math.Abs(x-last) > 1e-9*math.Max(1, math.Abs(x)) {
			out = append(out, x)
		}
	}
	return out
}
