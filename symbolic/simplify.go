package symbolic

import (
	"math"
	"math/big"
	"sort"
)

// Canonical form:
//   - Add holds no nested Add, folds numeric terms into one constant
//     placed last, merges like terms, and orders terms by degree.
//   - Mul holds no nested Mul, folds numeric factors into one leading
//     coefficient, and merges powers of the same base.
//   - Pow folds numeric bases with small integer exponents and
//     distributes integer exponents over products.
// Simplify is idempotent on its own output.

func (n Num) Simplify() Expr { return n }

func (s Sym) Simplify() Expr { return s }

func (a Add) Simplify() Expr {
	var flat []Expr
	var flatten func(e Expr)
	flatten = func(e Expr) {
		if nested, ok := e.(Add); ok {
			for _, t := range nested.Terms {
				flatten(t)
			}
			return
		}
		flat = append(flat, e)
	}
	for _, t := range a.Terms {
		flatten(t.Simplify())
	}

	type group struct {
		coeff Num
		rest  Expr
	}
	constant := zero
	groups := make(map[string]*group)
	var order []string
	for _, t := range flat {
		if n, ok := t.(Num); ok {
			constant = constant.addNum(n)
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		if g, ok := groups[key]; ok {
			g.coeff = g.coeff.addNum(c)
		} else {
			groups[key] = &group{coeff: c, rest: rest}
			order = append(order, key)
		}
	}

	var terms []Expr
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() {
			continue
		}
		terms = append(terms, scaleTerm(g.coeff, g.rest))
	}
	if !constant.IsZero() {
		terms = append(terms, constant)
	}

	switch len(terms) {
	case 0:
		return zero
	case 1:
		return terms[0]
	}
	sortTerms(terms)
	return Add{Terms: terms}
}

func (m Mul) Simplify() Expr {
	var flat []Expr
	var flatten func(e Expr)
	flatten = func(e Expr) {
		if nested, ok := e.(Mul); ok {
			for _, f := range nested.Factors {
				flatten(f)
			}
			return
		}
		flat = append(flat, e)
	}
	for _, f := range m.Factors {
		flatten(f.Simplify())
	}

	type powGroup struct {
		base Expr
		exps []Expr
	}
	coeff := one
	groups := make(map[string]*powGroup)
	var order []string
	record := func(base, exp Expr) {
		key := base.String()
		if g, ok := groups[key]; ok {
			g.exps = append(g.exps, exp)
		} else {
			groups[key] = &powGroup{base: base, exps: []Expr{exp}}
			order = append(order, key)
		}
	}
	for _, f := range flat {
		switch t := f.(type) {
		case Num:
			coeff = coeff.mulNum(t)
		case Pow:
			record(t.Base, t.Exp)
		default:
			record(f, one)
		}
	}
	if coeff.IsZero() {
		return zero
	}

	var factors []Expr
	for _, key := range order {
		g := groups[key]
		exp := Add{Terms: g.exps}.Simplify()
		if n, ok := exp.(Num); ok {
			if n.IsZero() {
				continue
			}
			if n.IsOne() {
				factors = append(factors, g.base)
				continue
			}
		}
		folded := Pow{Base: g.base, Exp: exp}.Simplify()
		if n, ok := folded.(Num); ok {
			coeff = coeff.mulNum(n)
			continue
		}
		factors = append(factors, folded)
	}

	if len(factors) == 0 {
		return coeff
	}
	sortFactors(factors)
	if coeff.IsOne() {
		if len(factors) == 1 {
			return factors[0]
		}
		return Mul{Factors: factors}
	}
	// A bare numeric coefficient distributes over a sole sum, so that
	// 2*(x+1) + x collects into 3*x + 2.
	if len(factors) == 1 {
		if a, ok := factors[0].(Add); ok {
			scaled := make([]Expr, len(a.Terms))
			for i, t := range a.Terms {
				scaled[i] = Mul{Factors: []Expr{coeff, t}}
			}
			return Add{Terms: scaled}.Simplify()
		}
	}
	return Mul{Factors: append([]Expr{coeff}, factors...)}
}

func (p Pow) Simplify() Expr {
	base := p.Base.Simplify()
	exp := p.Exp.Simplify()

	en, expNum := exp.(Num)
	if expNum {
		if en.IsZero() {
			return one
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(Num); ok {
		if bn.IsZero() {
			if expNum && en.Sign() > 0 {
				return zero
			}
			return Pow{Base: base, Exp: exp}
		}
		if bn.IsOne() {
			return one
		}
		if expNum {
			if folded, ok := foldNumPow(bn, en); ok {
				return folded
			}
		}
	}

	if expNum && en.IsInt() && !en.approx {
		if inner, ok := base.(Pow); ok {
			merged := Mul{Factors: []Expr{inner.Exp, en}}.Simplify()
			return Pow{Base: inner.Base, Exp: merged}.Simplify()
		}
		if prod, ok := base.(Mul); ok {
			distributed := make([]Expr, len(prod.Factors))
			for i, f := range prod.Factors {
				distributed[i] = Pow{Base: f, Exp: en}
			}
			return Mul{Factors: distributed}.Simplify()
		}
	}

	return Pow{Base: base, Exp: exp}
}

func (c Call) Simplify() Expr {
	arg := c.Arg.Simplify()
	if n, ok := arg.(Num); ok {
		if n.approx {
			v, err := (Call{Fn: c.Fn, Arg: n}).Eval(nil)
			if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				return NewFloat(v)
			}
			return Call{Fn: c.Fn, Arg: arg}
		}
		switch c.Fn {
		case "sqrt":
			if n.Sign() >= 0 {
				if root, ok := ratSqrt(n.rat); ok {
					return newRatNum(root, false)
				}
			}
		case "ln", "log":
			if n.IsOne() {
				return zero
			}
		case "sin", "tan":
			if n.IsZero() {
				return zero
			}
		case "cos", "exp":
			if n.IsZero() {
				return one
			}
		case "abs":
			if n.Sign() < 0 {
				return n.Neg()
			}
			return n
		}
	}
	return Call{Fn: c.Fn, Arg: arg}
}

// foldNumPow evaluates base**exp for numeric operands where an exact or
// float answer is available. Large integer exponents are left alone to
// keep results bounded.
func foldNumPow(base, exp Num) (Expr, bool) {
	if exp.IsInt() && !exp.approx {
		k := exp.Int64()
		if k >= -64 && k <= 64 {
			return newRatNum(ratPow(base.rat, k), base.approx), true
		}
		return nil, false
	}
	if base.approx || exp.approx {
		v := math.Pow(base.Float64(), exp.Float64())
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return NewFloat(v), true
		}
		return nil, false
	}
	// Exact rational exponent: fold only clean square roots.
	if exp.rat.Denom().Cmp(big.NewInt(2)) == 0 && base.Sign() > 0 {
		if root, ok := ratSqrt(base.rat); ok {
			p := exp.rat.Num().Int64()
			if p >= -64 && p <= 64 {
				return newRatNum(ratPow(root, p), false), true
			}
		}
	}
	return nil, false
}

func ratPow(r *big.Rat, k int64) *big.Rat {
	if k < 0 {
		return ratPow(new(big.Rat).Inv(r), -k)
	}
	out := new(big.Rat).SetInt64(1)
	for i := int64(0); i < k; i++ {
		out.Mul(out, r)
	}
	return out
}

func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	num, numOK := intSqrt(r.Num())
	den, denOK := intSqrt(r.Denom())
	if !numOK || !denOK {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intSqrt(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	root := new(big.Int).Sqrt(x)
	if check := new(big.Int).Mul(root, root); check.Cmp(x) == 0 {
		return root, true
	}
	return nil, false
}

// splitCoeff separates a term into its numeric coefficient and the
// remaining factor. The input must already be canonical.
func splitCoeff(t Expr) (Num, Expr) {
	m, ok := t.(Mul)
	if !ok || len(m.Factors) == 0 {
		return one, t
	}
	c, ok := m.Factors[0].(Num)
	if !ok {
		return one, t
	}
	rest := m.Factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}
	return c, Mul{Factors: append([]Expr{}, rest...)}
}

// scaleTerm rebuilds coeff*rest without re-running the full simplifier.
func scaleTerm(coeff Num, rest Expr) Expr {
	if coeff.IsOne() {
		return rest
	}
	if m, ok := rest.(Mul); ok {
		return Mul{Factors: append([]Expr{coeff}, m.Factors...)}
	}
	return Mul{Factors: []Expr{coeff, rest}}
}

func sortTerms(terms []Expr) {
	sort.SliceStable(terms, func(i, j int) bool {
		_, ci := terms[i].(Num)
		_, cj := terms[j].(Num)
		if ci != cj {
			return cj
		}
		di, dj := degree(terms[i]), degree(terms[j])
		if di != dj {
			return di > dj
		}
		// Same degree: order by the coefficient-stripped factor so
		// x**2 + 2*x*y + y**2 keeps its textbook shape.
		_, ri := splitCoeff(terms[i])
		_, rj := splitCoeff(terms[j])
		return ri.String() < rj.String()
	})
}

func sortFactors(factors []Expr) {
	sort.SliceStable(factors, func(i, j int) bool {
		di, dj := degree(factors[i]), degree(factors[j])
		if di != dj {
			return di > dj
		}
		return factors[i].String() < factors[j].String()
	})
}
