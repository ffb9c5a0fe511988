package symbolic

import (
	"fmt"
	"math"
)

func (n Num) Diff(v Sym) Expr { return zero }

func (s Sym) Diff(v Sym) Expr {
	if s == v {
		return one
	}
	return zero
}

func (a Add) Diff(v Sym) Expr {
	terms := make([]Expr, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = t.Diff(v)
	}
	return Add{Terms: terms}.Simplify()
}

func (m Mul) Diff(v Sym) Expr {
	terms := make([]Expr, 0, len(m.Factors))
	for i := range m.Factors {
		parts := make([]Expr, len(m.Factors))
		for j, f := range m.Factors {
			if i == j {
				parts[j] = f.Diff(v)
			} else {
				parts[j] = f
			}
		}
		terms = append(terms, Mul{Factors: parts})
	}
	return Add{Terms: terms}.Simplify()
}

func (p Pow) Diff(v Sym) Expr {
	baseFree := freeOf(p.Base, v)
	expFree := freeOf(p.Exp, v)
	switch {
	case baseFree && expFree:
		return zero
	case expFree:
		return mul(p.Exp, pow(p.Base, sub(p.Exp, one)), p.Base.Diff(v)).Simplify()
	case baseFree:
		return mul(p, call("log", p.Base), p.Exp.Diff(v)).Simplify()
	}
	inner := add(
		mul(p.Exp.Diff(v), call("log", p.Base)),
		mul(p.Exp, p.Base.Diff(v), inv(p.Base)),
	)
	return mul(p, inner).Simplify()
}

func (c Call) Diff(v Sym) Expr {
	du := c.Arg.Diff(v)
	var outer Expr
	switch c.Fn {
	case "sqrt":
		outer = inv(mul(NewInt(2), call("sqrt", c.Arg)))
	case "sin":
		outer = call("cos", c.Arg)
	case "cos":
		outer = neg(call("sin", c.Arg))
	case "tan":
		outer = pow(call("cos", c.Arg), NewInt(-2))
	case "exp":
		outer = c
	case "log", "ln":
		outer = inv(c.Arg)
	case "abs":
		outer = mul(c.Arg, inv(Call{Fn: "abs", Arg: c.Arg}))
	default:
		// unreachable: the parser gates function names
		return zero
	}
	return mul(outer, du).Simplify()
}

func call(fn string, arg Expr) Expr { return Call{Fn: fn, Arg: arg} }

// Integrate computes an antiderivative of e with respect to v, without
// the integration constant. The integrator is table-driven: constants
// split off products, sums integrate termwise, powers and the standard
// functions integrate through a linear inner expression. ok is false
// when no rule applies.
func Integrate(e Expr, v Sym) (Expr, bool) {
	return integrate(e.Simplify(), v)
}

func integrate(e Expr, v Sym) (Expr, bool) {
	if freeOf(e, v) {
		return mul(e, v).Simplify(), true
	}
	switch t := e.(type) {
	case Sym:
		return mul(NewRat(1, 2), pow(v, NewInt(2))).Simplify(), true
	case Add:
		parts := make([]Expr, len(t.Terms))
		for i, term := range t.Terms {
			p, ok := integrate(term, v)
			if !ok {
				return nil, false
			}
			parts[i] = p
		}
		return Add{Terms: parts}.Simplify(), true
	case Mul:
		var constant, dependent []Expr
		for _, f := range t.Factors {
			if freeOf(f, v) {
				constant = append(constant, f)
			} else {
				dependent = append(dependent, f)
			}
		}
		if len(constant) == 0 {
			return nil, false
		}
		inner, ok := integrate(Mul{Factors: dependent}.Simplify(), v)
		if !ok {
			return nil, false
		}
		return Mul{Factors: append(constant, inner)}.Simplify(), true
	case Pow:
		if !freeOf(t.Exp, v) {
			if freeOf(t.Base, v) {
				// c**(a*v+b) -> c**(a*v+b) / (a*log(c))
				if a, _, ok := linearInner(t.Exp, v); ok {
					return div(t, mul(a, call("log", t.Base))).Simplify(), true
				}
			}
			return nil, false
		}
		if a, _, ok := linearInner(t.Base, v); ok {
			u := t.Base
			if n, isNum := t.Exp.(Num); isNum && n.Cmp(negOne) == 0 {
				return div(call("log", u), a).Simplify(), true
			}
			np1 := add(t.Exp, one)
			return div(pow(u, np1), mul(np1, a)).Simplify(), true
		}
		return nil, false
	case Call:
		a, _, ok := linearInner(t.Arg, v)
		if !ok {
			return nil, false
		}
		u := t.Arg
		var anti Expr
		switch t.Fn {
		case "sin":
			anti = neg(call("cos", u))
		case "cos":
			anti = call("sin", u)
		case "exp":
			anti = t
		case "log", "ln":
			anti = sub(mul(u, call("log", u)), u)
		case "sqrt":
			anti = mul(NewRat(2, 3), pow(u, NewRat(3, 2)))
		case "tan":
			anti = neg(call("log", call("cos", u)))
		default:
			return nil, false
		}
		return div(anti, a).Simplify(), true
	}
	return nil, false
}

// linearInner reports e as a*v + b with a nonzero and both parts free
// of v, which is the shape the u-substitution rules accept.
func linearInner(e Expr, v Sym) (Expr, Expr, bool) {
	a, b, ok := linearParts(e, v)
	if !ok {
		return nil, nil, false
	}
	as := a.Simplify()
	if n, isNum := as.(Num); isNum && n.IsZero() {
		return nil, nil, false
	}
	return as, b.Simplify(), true
}

// LimitResult is the outcome of a limit computation. Exact is non-nil
// when the limit is a definite expression; otherwise Value carries an
// infinity.
type LimitResult struct {
	Exact Expr
	Value float64
}

// Limit computes the limit of e as v approaches point, which may be
// ±Inf. Substitution is tried first; indeterminate forms fall back to
// numeric sampling from the right, the conventional default direction,
// with the left side used when the right is undefined.
func Limit(e Expr, v Sym, point float64) (LimitResult, error) {
	e = e.Simplify()
	if !math.IsInf(point, 0) {
		at := e.Subst(v, NewFloat(point))
		if wellDefined(at) {
			return LimitResult{Exact: at.Simplify()}, nil
		}
		if res, ok := sampleFinite(e, v, point, +1); ok {
			return res, nil
		}
		if res, ok := sampleFinite(e, v, point, -1); ok {
			return res, nil
		}
		return LimitResult{}, fmt.Errorf("limit could not be determined")
	}
	return sampleInfinite(e, v, point)
}

// wellDefined walks a variable-free tree looking for undefined numeric
// subforms: division by zero, logarithms at or below zero, square
// roots of negatives, zero to a negative power.
func wellDefined(e Expr) bool {
	switch t := e.(type) {
	case Num, Sym:
		return true
	case Add:
		for _, term := range t.Terms {
			if !wellDefined(term) {
				return false
			}
		}
		return true
	case Mul:
		for _, f := range t.Factors {
			if !wellDefined(f) {
				return false
			}
		}
		return true
	case Pow:
		if !wellDefined(t.Base) || !wellDefined(t.Exp) {
			return false
		}
		if b, ok := t.Base.Simplify().(Num); ok && b.IsZero() {
			if x, ok := t.Exp.Simplify().(Num); ok && x.Sign() < 0 {
				return false
			}
		}
		return true
	case Call:
		if !wellDefined(t.Arg) {
			return false
		}
		arg, ok := t.Arg.Simplify().(Num)
		if !ok {
			return true
		}
		switch t.Fn {
		case "log", "ln":
			return arg.Sign() > 0
		case "sqrt":
			return arg.Sign() >= 0
		}
		return true
	}
	return false
}

func sampleFinite(e Expr, v Sym, point float64, dir int) (LimitResult, bool) {
	var vals []float64
	for k := 2; k <= 7; k++ {
		h := math.Pow(10, -float64(k))
		x := point + float64(dir)*h
		val, err := e.Eval(map[Sym]float64{v: x})
		if err != nil || math.IsNaN(val) {
			continue
		}
		vals = append(vals, val)
	}
	return judgeSamples(vals)
}

func sampleInfinite(e Expr, v Sym, point float64) (LimitResult, error) {
	sign := 1.0
	if math.IsInf(point, -1) {
		sign = -1
	}
	var vals []float64
	for k := 2; k <= 7; k++ {
		x := sign * math.Pow(10, float64(k))
		val, err := e.Eval(map[Sym]float64{v: x})
		if err != nil || math.IsNaN(val) {
			continue
		}
		vals = append(vals, val)
	}
	if res, ok := judgeSamples(vals); ok {
		return res, nil
	}
	return LimitResult{}, fmt.Errorf("limit could not be determined")
}

// judgeSamples reads a trend off successively closer samples: settled
// values give a finite limit, monotone runaway values of one sign an
// infinite one.
func judgeSamples(vals []float64) (LimitResult, bool) {
	if len(vals) < 3 {
		return LimitResult{}, false
	}
	last := vals[len(vals)-1]
	prev := vals[len(vals)-2]
	third := vals[len(vals)-3]

	if !math.IsInf(last, 0) && math.Abs(last-prev) <= 1e-4*(1+math.Abs(last)) {
		return LimitResult{Exact: snapLimit(last)}, true
	}

	sameSign := (last < 0) == (prev < 0) && (prev < 0) == (third < 0)
	growing := math.Abs(last) > math.Abs(prev) && math.Abs(prev) > math.Abs(third)
	sustained := math.Abs(last-prev) >= 0.5*math.Abs(prev-third)
	if sameSign && (math.IsInf(last, 0) || (growing && sustained)) {
		if last < 0 {
			return LimitResult{Value: math.Inf(-1)}, true
		}
		return LimitResult{Value: math.Inf(1)}, true
	}
	return LimitResult{}, false
}

// snapLimit rounds sampling noise off near-integer limits.
func snapLimit(l float64) Expr {
	r := math.Round(l)
	if math.Abs(l-r) < 1e-5*(1+math.Abs(r)) {
		return NewFloat(r)
	}
	return NewFloat(l)
}
