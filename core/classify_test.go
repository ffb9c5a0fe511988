package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		request string
		want    Category
	}{
		{"Calculate the determinant of matrix [[1,2],[3,4]]", CategoryMatrix},
		{"find the inverse of [[1,0],[0,1]]", CategoryMatrix},
		{"What is the mean of 1, 2, 3?", CategoryStatistics},
		{"standard deviation of 4 5 6", CategoryStatistics},
		{"factor the polynomial x^2-4", CategoryAlgebra},
		{"simplify the expression x+x", CategoryAlgebra},
		{"Find the derivative of x^2 with respect to x", CategoryCalculus},
		{"integrate the expression x with respect to x", CategoryCalculus},
		{"solve 2x+4=0 for x", CategoryEquation},
		{"find x when x+1=3", CategoryEquation},
		{"2 + 2", CategoryArithmetic},
		{"", CategoryArithmetic},
		{"hello there", CategoryArithmetic},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.request), "request %q", tc.request)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Matrix keywords are checked before equation keywords, so a
	// request carrying both stays in the matrix category.
	assert.Equal(t, CategoryMatrix, Classify("solve the determinant of matrix [[1,2],[3,4]]"))

	// Statistics beats algebra for the same reason.
	assert.Equal(t, CategoryStatistics, Classify("simplify the mean of 1 2 3"))

	// Calculus keywords outrank equation keywords.
	assert.Equal(t, CategoryCalculus, Classify("solve the derivative of x^2 with respect to x"))
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryMatrix, Classify("DETERMINANT of [[1,2],[3,4]]"))
	assert.Equal(t, CategoryStatistics, Classify("MEDIAN of 1 2 3"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "arithmetic", CategoryArithmetic.String())
	assert.Equal(t, "matrix", CategoryMatrix.String())
	assert.Equal(t, "statistics", CategoryStatistics.String())
	assert.Equal(t, "algebra", CategoryAlgebra.String())
	assert.Equal(t, "calculus", CategoryCalculus.String())
	assert.Equal(t, "equation", CategoryEquation.String())
	assert.Equal(t, "arithmetic", Category(99).String())
}
