// Package core implements the natural-language calculator pipeline:
// a request is classified into a math category, structured parameters
// are extracted from the text, the matching operation handler computes
// a result, and the result is formatted back into prose. The pipeline
// is pure and total: Evaluate returns a non-empty string for every
// input and never panics past its own boundary.
package core

import "strings"

// Category is the single classification label assigned to a request.
// The zero value is CategoryArithmetic, the fallback when no keyword
// matches.
type Category int

const (
	CategoryArithmetic Category = iota
	CategoryMatrix
	CategoryStatistics
	CategoryAlgebra
	CategoryCalculus
	CategoryEquation
)

var categoryNames = [...]string{
	CategoryArithmetic: "arithmetic",
	CategoryMatrix:     "matrix",
	CategoryStatistics: "statistics",
	CategoryAlgebra:    "algebra",
	CategoryCalculus:   "calculus",
	CategoryEquation:   "equation",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "arithmetic"
	}
	return categoryNames[c]
}

// categoryKeywords lists the keyword set per category in priority
// order. The order is load-bearing: a request containing both "solve"
// and "matrix" classifies as matrix because matrix is checked first.
var categoryKeywords = []struct {
	cat   Category
	terms []string
}{
	{CategoryMatrix, []string{"matrix", "determinant", "eigenvalue", "inverse"}},
	{CategoryStatistics, []string{"mean", "median", "variance", "standard deviation", "correlation"}},
	{CategoryAlgebra, []string{"factor", "expand", "simplify", "polynomial"}},
	{CategoryCalculus, []string{"integrate", "derivative", "differentiate", "limit"}},
	{CategoryEquation, []string{"solve", "equation", "find x", "find y"}},
}

// Classify assigns exactly one category to the request. It lower-cases
// the text and returns the first category whose keyword set matches;
// with no match the request is treated as plain arithmetic.
func Classify(request string) Category {
	query := strings.ToLower(request)
	for _, entry := range categoryKeywords {
		for _, term := range entry.terms {
			if strings.Contains(query, term) {
				return entry.cat
			}
		}
	}
	return CategoryArithmetic
}
