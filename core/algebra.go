package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/va6996/mathdesk/symbolic"
)

// algebraicOperations parses the extracted expression symbolically and
// factors, expands or simplifies it. Unrecognized sub-kinds fall back
// to simplify.
func algebraicOperations(p Params) Result {
	if p.Expression == "" {
		return messageResult("No expression provided for algebraic operation")
	}

	tab := symbolic.NewSymtab()
	expr, err := symbolic.Parse(p.Expression, tab)
	if err != nil {
		return messageResult(fmt.Sprintf("Error parsing expression: %v", err))
	}

	switch p.Operation {
	case "factor":
		return exprResult(symbolic.Factor(expr))
	case "expand":
		return exprResult(symbolic.Expand(expr))
	default:
		return exprResult(expr.Simplify())
	}
}

// calculusOperations differentiates, integrates or takes the limit of
// the extracted expression with respect to the requested variable.
func calculusOperations(p Params) Result {
	if p.Expression == "" {
		return messageResult("No expression provided for calculus operation")
	}

	tab := symbolic.NewSymtab()
	v := tab.Intern(variableName(p.Variable))
	expr, err := symbolic.Parse(p.Expression, tab)
	if err != nil {
		return messageResult(fmt.Sprintf("Error parsing expression: %v", err))
	}

	switch p.Operation {
	case "derivative":
		return exprResult(expr.Diff(v))

	case "integrate":
		anti, ok := symbolic.Integrate(expr, v)
		if !ok {
			return messageResult(fmt.Sprintf("Cannot integrate %s symbolically", expr.Simplify()))
		}
		return exprResult(anti)

	case "limit":
		point := 0.0
		if p.HasApproach {
			point = p.Approach
		}
		res, err := symbolic.Limit(expr, v, point)
		if err != nil {
			return messageResult(fmt.Sprintf("Error computing limit: %v", err))
		}
		if res.Exact != nil {
			return exprResult(res.Exact)
		}
		if math.IsInf(res.Value, -1) {
			return textResult("-oo")
		}
		return textResult("oo")

	default:
		return messageResult("Unknown calculus operation")
	}
}

// solveEquation splits the extracted equation text on the first "=",
// treating a bare expression as "expression = 0", and solves for the
// requested variable.
func solveEquation(p Params) Result {
	if p.Equation == "" {
		return messageResult("No equation provided to solve")
	}

	tab := symbolic.NewSymtab()
	v := tab.Intern(variableName(p.Variable))

	var lhs, rhs symbolic.Expr
	var err error
	if i := strings.Index(p.Equation, "="); i >= 0 {
		lhs, err = symbolic.Parse(p.Equation[:i], tab)
		if err == nil {
			rhs, err = symbolic.Parse(p.Equation[i+1:], tab)
		}
	} else {
		lhs, err = symbolic.Parse(p.Equation, tab)
		rhs = symbolic.NewInt(0)
	}
	if err != nil {
		return messageResult(fmt.Sprintf("Error solving equation: %v", err))
	}

	roots, err := symbolic.Solve(lhs, rhs, v)
	if err != nil {
		return messageResult(fmt.Sprintf("Error solving equation: %v", err))
	}
	if len(roots) == 0 {
		return messageResult(fmt.Sprintf("No solution found for the equation %s = %s",
			lhs.Simplify(), rhs.Simplify()))
	}
	return solutionsResult(v.Name, roots)
}

// variableName narrows the extracted variable to a single letter,
// defaulting to x. The symbol table interns whatever letter comes
// back, so y, z and ad hoc letters like t all resolve.
func variableName(name string) string {
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		return name
	}
	return "x"
}
