package symbolic

import (
	"strconv"
	"strings"
)

// Printing follows the usual CAS text conventions: powers render as
// base**exp, negative powers fold into a fraction bar, sums interleave
// " + " and " - ", and sums nested inside products get parentheses.

func (n Num) String() string {
	if n.approx {
		f, _ := n.rat.Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return n.rat.RatString()
}

func (s Sym) String() string { return s.Name }

func (a Add) String() string {
	if len(a.Terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.Terms {
		negative, mag := splitSign(t)
		s := sumOperand(mag)
		switch {
		case i == 0 && negative:
			b.WriteString("-")
			b.WriteString(s)
		case i == 0:
			b.WriteString(s)
		case negative:
			b.WriteString(" - ")
			b.WriteString(s)
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (m Mul) String() string {
	coeff := one
	var num, den []string
	for _, f := range m.Factors {
		switch t := f.(type) {
		case Num:
			coeff = coeff.mulNum(t)
		case Pow:
			if e, ok := t.Exp.(Num); ok && !e.approx && e.IsInt() && e.Sign() < 0 {
				var inner Expr = t.Base
				if flip := e.Neg(); !flip.IsOne() {
					inner = Pow{Base: t.Base, Exp: flip}
				}
				den = append(den, mulOperand(inner))
			} else {
				num = append(num, mulOperand(f))
			}
		default:
			num = append(num, mulOperand(f))
		}
	}

	sign := ""
	if coeff.Sign() < 0 {
		sign = "-"
		coeff = coeff.Neg()
	}
	if coeff.approx {
		if !coeff.IsOne() {
			num = append([]string{coeff.String()}, num...)
		}
	} else {
		p, q := coeff.rat.Num(), coeff.rat.Denom()
		if p.String() != "1" || len(num) == 0 {
			num = append([]string{p.String()}, num...)
		}
		if q.String() != "1" {
			den = append([]string{q.String()}, den...)
		}
	}

	ns := strings.Join(num, "*")
	if ns == "" {
		ns = "1"
	}
	if len(den) == 0 {
		return sign + ns
	}
	ds := strings.Join(den, "*")
	if len(den) > 1 {
		ds = "(" + ds + ")"
	}
	return sign + ns + "/" + ds
}

func (p Pow) String() string {
	if e, ok := p.Exp.(Num); ok && !e.approx && e.IsInt() && e.Sign() < 0 {
		if e.Cmp(negOne) == 0 {
			return "1/" + mulOperand(p.Base)
		}
		return "1/" + mulOperand(Pow{Base: p.Base, Exp: e.Neg()})
	}
	return powBase(p.Base) + "**" + powExp(p.Exp)
}

func (c Call) String() string {
	return c.Fn + "(" + c.Arg.String() + ")"
}

// splitSign peels a leading minus off a term so sums can render it as
// a subtraction.
func splitSign(t Expr) (bool, Expr) {
	switch e := t.(type) {
	case Num:
		if e.Sign() < 0 {
			return true, e.Neg()
		}
	case Mul:
		if len(e.Factors) > 0 {
			if c, ok := e.Factors[0].(Num); ok && c.Sign() < 0 {
				flip := c.Neg()
				rest := e.Factors[1:]
				if flip.IsOne() && len(rest) == 1 {
					return true, rest[0]
				}
				if flip.IsOne() && len(rest) > 1 {
					return true, Mul{Factors: append([]Expr{}, rest...)}
				}
				factors := append([]Expr{flip}, rest...)
				return true, Mul{Factors: factors}
			}
		}
	}
	return false, t
}

func sumOperand(e Expr) string {
	if _, ok := e.(Add); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func mulOperand(e Expr) string {
	switch t := e.(type) {
	case Add:
		return "(" + t.String() + ")"
	case Num:
		if t.Sign() < 0 || (!t.approx && !t.IsInt()) {
			return "(" + t.String() + ")"
		}
		return t.String()
	}
	return e.String()
}

func powBase(e Expr) string {
	switch t := e.(type) {
	case Add, Mul, Pow:
		return "(" + e.String() + ")"
	case Num:
		if t.Sign() < 0 || (!t.approx && !t.IsInt()) {
			return "(" + t.String() + ")"
		}
		return t.String()
	}
	return e.String()
}

func powExp(e Expr) string {
	switch t := e.(type) {
	case Add, Mul, Pow:
		return "(" + e.String() + ")"
	case Num:
		if t.Sign() < 0 || (!t.approx && !t.IsInt()) {
			return "(" + t.String() + ")"
		}
		return t.String()
	}
	return e.String()
}
