package symbolic

import (
	"math/big"
	"sort"
)

// Expand distributes products over sums, multiplies out small integer
// powers of sums and simplifies the result. Function arguments are
// expanded too.
func Expand(e Expr) Expr {
	return expandNode(e.Simplify())
}

func expandNode(e Expr) Expr {
	switch t := e.(type) {
	case Add:
		terms := make([]Expr, len(t.Terms))
		for i, term := range t.Terms {
			terms[i] = expandNode(term)
		}
		return Add{Terms: terms}.Simplify()
	case Mul:
		factors := make([]Expr, len(t.Factors))
		for i, f := range t.Factors {
			factors[i] = expandNode(f)
		}
		return distribute(factors)
	case Pow:
		base := expandNode(t.Base)
		if n, ok := t.Exp.(Num); ok && n.IsInt() && !n.approx {
			if k := n.Int64(); k > 1 && k <= 16 {
				if _, isAdd := base.(Add); isAdd {
					acc := base
					for i := int64(1); i < k; i++ {
						acc = distribute([]Expr{acc, base})
					}
					return acc
				}
			}
		}
		return Pow{Base: base, Exp: expandNode(t.Exp)}.Simplify()
	case Call:
		return Call{Fn: t.Fn, Arg: expandNode(t.Arg)}.Simplify()
	}
	return e
}

// distribute multiplies out a factor list, turning any Add factors
// into a sum of products. Oversized expansions are left alone.
func distribute(factors []Expr) Expr {
	products := [][]Expr{{}}
	for _, f := range factors {
		terms := []Expr{f}
		if a, ok := f.(Add); ok {
			terms = a.Terms
		}
		if len(products)*len(terms) > 4096 {
			return Mul{Factors: factors}.Simplify()
		}
		var next [][]Expr
		for _, p := range products {
			for _, term := range terms {
				combined := make([]Expr, 0, len(p)+1)
				combined = append(combined, p...)
				combined = append(combined, term)
				next = append(next, combined)
			}
		}
		products = next
	}
	sum := make([]Expr, len(products))
	for i, p := range products {
		sum[i] = Mul{Factors: p}
	}
	return Add{Terms: sum}.Simplify()
}

// Factor rewrites a univariate polynomial as a product of linear
// factors for each rational root, times any irreducible remainder.
// Expressions the factorizer does not handle come back simplified but
// otherwise unchanged.
func Factor(e Expr) Expr {
	expanded := Expand(e)
	v, ok := soleSymbol(expanded)
	if !ok {
		return e.Simplify()
	}
	coeffs, ok := PolyCoeffs(expanded, v)
	if !ok {
		return e.Simplify()
	}
	coeffs = polyTrim(coeffs)
	if len(coeffs) < 2 {
		return expanded
	}

	type root struct {
		value *big.Rat
		mult  int64
	}
	var roots []root
	remaining := coeffs
	for len(remaining) > 1 {
		found := false
		for _, cand := range rationalCandidates(remaining) {
			if polyEvalRat(remaining, cand).Sign() == 0 {
				if n := len(roots); n > 0 && roots[n-1].value.Cmp(cand) == 0 {
					roots[n-1].mult++
				} else {
					roots = append(roots, root{value: cand, mult: 1})
				}
				remaining = polyTrim(deflate(remaining, cand))
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	if len(roots) == 0 {
		return expanded
	}

	factors := make([]Expr, 0, len(roots)+1)
	if len(remaining) == 1 {
		if lead := newRatNum(remaining[0], false); !lead.IsOne() {
			factors = append(factors, lead)
		}
	} else {
		factors = append(factors, polyToExpr(remaining, v))
	}
	for _, r := range roots {
		linear := sub(v, newRatNum(r.value, false))
		if r.mult > 1 {
			factors = append(factors, pow(linear.Simplify(), NewInt(r.mult)))
		} else {
			factors = append(factors, linear.Simplify())
		}
	}
	if len(factors) == 1 {
		return factors[0].Simplify()
	}
	return canonicalProduct(factors)
}

// canonicalProduct orders and wraps factors without re-running the
// full simplifier, which would merge the very powers Factor built.
// Polynomial factors sort by constant term, the conventional CAS
// ordering: (x - 3)*(x - 2), (x - 2)*(x + 2).
func canonicalProduct(factors []Expr) Expr {
	var coeff []Expr
	var rest []Expr
	for _, f := range factors {
		if _, ok := f.(Num); ok {
			coeff = append(coeff, f)
		} else {
			rest = append(rest, f)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		ci, cj := constantTerm(rest[i]), constantTerm(rest[j])
		if ci != cj {
			return ci < cj
		}
		return rest[i].String() < rest[j].String()
	})
	return Mul{Factors: append(coeff, rest...)}
}

func constantTerm(e Expr) float64 {
	if p, ok := e.(Pow); ok {
		e = p.Base
	}
	if a, ok := e.(Add); ok {
		for _, t := range a.Terms {
			if n, ok := t.(Num); ok {
				return n.Float64()
			}
		}
	}
	return 0
}

func polyToExpr(coeffs []*big.Rat, v Sym) Expr {
	var terms []Expr
	for i, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		cn := newRatNum(c, false)
		switch i {
		case 0:
			terms = append(terms, cn)
		case 1:
			terms = append(terms, mul(cn, v))
		default:
			terms = append(terms, mul(cn, pow(v, NewInt(int64(i)))))
		}
	}
	return Add{Terms: terms}.Simplify()
}

func soleSymbol(e Expr) (Sym, bool) {
	set := make(map[Sym]bool)
	collectSyms(e, set)
	if len(set) != 1 {
		return Sym{}, false
	}
	for s := range set {
		return s, true
	}
	return Sym{}, false
}

func collectSyms(e Expr, set map[Sym]bool) {
	switch t := e.(type) {
	case Sym:
		set[t] = true
	case Add:
		for _, term := range t.Terms {
			collectSyms(term, set)
		}
	case Mul:
		for _, f := range t.Factors {
			collectSyms(f, set)
		}
	case Pow:
		collectSyms(t.Base, set)
		collectSyms(t.Exp, set)
	case Call:
		collectSyms(t.Arg, set)
	}
}
