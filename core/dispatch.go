package core

import "fmt"

// Dispatch routes the category and its extracted parameters to the
// matching operation handler. Handlers convert their own failures to
// message results; a recover guard additionally downgrades any panic
// out of the numeric libraries, so Dispatch never raises.
func Dispatch(cat Category, p Params) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if cat == CategoryArithmetic {
				res = messageResult(fmt.Sprintf("Error evaluating expression: %v", r))
			} else {
				res = messageResult(fmt.Sprintf("Error performing %s calculation: %v", cat, r))
			}
		}
	}()

	switch cat {
	case CategoryMatrix:
		return matrixOperations(p)
	case CategoryStatistics:
		return statisticalAnalysis(p)
	case CategoryAlgebra:
		return algebraicOperations(p)
	case CategoryCalculus:
		return calculusOperations(p)
	case CategoryEquation:
		return solveEquation(p)
	default:
		return evaluateArithmetic(p.Expression)
	}
}
