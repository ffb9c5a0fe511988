// Package symbolic implements a small computer algebra engine: exact
// rational arithmetic, canonical simplification, differentiation, a
// table-driven integrator, polynomial equation solving, factoring and
// limits. Expressions are immutable trees; every operation returns a
// new tree.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// Expr is a symbolic expression node.
type Expr interface {
	fmt.Stringer
	// Simplify returns an equivalent expression in canonical form.
	Simplify() Expr
	// Diff differentiates with respect to v. The result is simplified.
	Diff(v Sym) Expr
	// Subst replaces every occurrence of v with repl.
	Subst(v Sym, repl Expr) Expr
	// Eval computes a numeric value using the symbol bindings in env.
	Eval(env map[Sym]float64) (float64, error)
}

// Num is a numeric literal. Values are stored as exact rationals; the
// approx flag marks numbers that came out of floating-point computation
// so they print in float notation instead of as huge fractions.
type Num struct {
	rat    *big.Rat
	approx bool
}

// Sym is a variable. Syms with the same name are interchangeable; use a
// Symtab to intern them.
type Sym struct {
	Name string
}

// Add is an n-ary sum. Canonical form keeps terms sorted with at most
// one numeric constant, placed last.
type Add struct {
	Terms []Expr
}

// Mul is an n-ary product. Canonical form keeps at most one numeric
// coefficient, placed first.
type Mul struct {
	Factors []Expr
}

// Pow is exponentiation. Division is represented as a Pow with a
// negative exponent inside a Mul.
type Pow struct {
	Base Expr
	Exp  Expr
}

// Call is a unary function application.
type Call struct {
	Fn  string
	Arg Expr
}

// NewInt returns an exact integer literal.
func NewInt(n int64) Num {
	return Num{rat: new(big.Rat).SetInt64(n)}
}

// NewRat returns an exact rational literal p/q. q must be nonzero.
func NewRat(p, q int64) Num {
	return Num{rat: big.NewRat(p, q)}
}

// NewFloat returns a numeric literal from a float. Integral values are
// treated as exact so that computed roots and limits print cleanly.
// Non-finite input collapses to zero; callers are expected to screen
// NaN and infinities before building literals.
func NewFloat(f float64) Num {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return Num{rat: new(big.Rat)}
	}
	if r.IsInt() {
		return Num{rat: r}
	}
	return Num{rat: r, approx: true}
}

func newRatNum(r *big.Rat, approx bool) Num {
	cp := new(big.Rat).Set(r)
	if approx && cp.IsInt() {
		approx = false
	}
	return Num{rat: cp, approx: approx}
}

// IsZero reports whether the literal equals 0.
func (n Num) IsZero() bool { return n.rat.Sign() == 0 }

// IsOne reports whether the literal equals 1.
func (n Num) IsOne() bool { return n.rat.Cmp(ratOne) == 0 }

// IsInt reports whether the literal is an integer.
func (n Num) IsInt() bool { return n.rat.IsInt() }

// Int64 returns the literal as an int64. Only meaningful when IsInt
// reports true and the value fits.
func (n Num) Int64() int64 { return n.rat.Num().Int64() }

// Float64 returns the nearest float64.
func (n Num) Float64() float64 {
	f, _ := n.rat.Float64()
	return f
}

// Sign reports -1, 0 or +1.
func (n Num) Sign() int { return n.rat.Sign() }

// Neg returns the negated literal.
func (n Num) Neg() Num {
	return Num{rat: new(big.Rat).Neg(n.rat), approx: n.approx}
}

// Cmp compares two literals: -1 if n < m, 0 if equal, +1 if n > m.
func (n Num) Cmp(m Num) int { return n.rat.Cmp(m.rat) }

func (n Num) addNum(m Num) Num {
	return newRatNum(new(big.Rat).Add(n.rat, m.rat), n.approx || m.approx)
}

func (n Num) mulNum(m Num) Num {
	return newRatNum(new(big.Rat).Mul(n.rat, m.rat), n.approx || m.approx)
}

func (n Num) invNum() (Num, bool) {
	if n.IsZero() {
		return Num{}, false
	}
	return newRatNum(new(big.Rat).Inv(n.rat), n.approx), true
}

var (
	ratOne = big.NewRat(1, 1)

	zero   = NewInt(0)
	one    = NewInt(1)
	negOne = NewInt(-1)
)

// Internal constructors. The results are raw trees; call Simplify to
// reach canonical form.

func add(terms ...Expr) Expr   { return Add{Terms: terms} }
func mul(factors ...Expr) Expr { return Mul{Factors: factors} }
func pow(base, exp Expr) Expr  { return Pow{Base: base, Exp: exp} }
func neg(e Expr) Expr          { return mul(negOne, e) }
func sub(a, b Expr) Expr       { return add(a, neg(b)) }
func inv(e Expr) Expr          { return pow(e, negOne) }
func div(a, b Expr) Expr       { return mul(a, inv(b)) }

func (n Num) Subst(v Sym, repl Expr) Expr { return n }

func (s Sym) Subst(v Sym, repl Expr) Expr {
	if s == v {
		return repl
	}
	return s
}

func (a Add) Subst(v Sym, repl Expr) Expr {
	terms := make([]Expr, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = t.Subst(v, repl)
	}
	return Add{Terms: terms}
}

func (m Mul) Subst(v Sym, repl Expr) Expr {
	factors := make([]Expr, len(m.Factors))
	for i, f := range m.Factors {
		factors[i] = f.Subst(v, repl)
	}
	return Mul{Factors: factors}
}

func (p Pow) Subst(v Sym, repl Expr) Expr {
	return Pow{Base: p.Base.Subst(v, repl), Exp: p.Exp.Subst(v, repl)}
}

func (c Call) Subst(v Sym, repl Expr) Expr {
	return Call{Fn: c.Fn, Arg: c.Arg.Subst(v, repl)}
}

func (n Num) Eval(env map[Sym]float64) (float64, error) {
	return n.Float64(), nil
}

func (s Sym) Eval(env map[Sym]float64) (float64, error) {
	if v, ok := env[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unbound symbol %s", s.Name)
}

func (a Add) Eval(env map[Sym]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.Terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (m Mul) Eval(env map[Sym]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.Factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (p Pow) Eval(env map[Sym]float64) (float64, error) {
	b, err := p.Base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.Exp.Eval(env)
	if err != nil {
		return 0, err
	}
	return math.Pow(b, e), nil
}

func (c Call) Eval(env map[Sym]float64) (float64, error) {
	v, err := c.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	switch c.Fn {
	case "sqrt":
		return math.Sqrt(v), nil
	case "sin":
		return math.Sin(v), nil
	case "cos":
		return math.Cos(v), nil
	case "tan":
		return math.Tan(v), nil
	case "exp":
		return math.Exp(v), nil
	case "ln", "log":
		return math.Log(v), nil
	case "abs":
		return math.Abs(v), nil
	}
	return 0, fmt.Errorf("unknown function %s", c.Fn)
}

// freeOf reports whether e contains no occurrence of v.
func freeOf(e Expr, v Sym) bool {
	switch t := e.(type) {
	case Num:
		return true
	case Sym:
		return t != v
	case Add:
		for _, term := range t.Terms {
			if !freeOf(term, v) {
				return false
			}
		}
		return true
	case Mul:
		for _, f := range t.Factors {
			if !freeOf(f, v) {
				return false
			}
		}
		return true
	case Pow:
		return freeOf(t.Base, v) && freeOf(t.Exp, v)
	case Call:
		return freeOf(t.Arg, v)
	}
	return false
}

// degree estimates the total polynomial degree of e, treating function
// calls and non-integer powers as degree zero. It drives term ordering.
func degree(e Expr) int {
	switch t := e.(type) {
	case Num:
		return 0
	case Sym:
		return 1
	case Add:
		max := 0
		for _, term := range t.Terms {
			if d := degree(term); d > max {
				max = d
			}
		}
		return max
	case Mul:
		sum := 0
		for _, f := range t.Factors {
			sum += degree(f)
		}
		return sum
	case Pow:
		if n, ok := t.Exp.(Num); ok && n.IsInt() {
			e64 := n.Int64()
			if e64 > -1000 && e64 < 1000 {
				return int(e64) * degree(t.Base)
			}
		}
		return 0
	case Call:
		return 0
	}
	return 0
}
