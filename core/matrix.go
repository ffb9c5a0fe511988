package core

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// matrixOperations performs the matrix handler: determinant, inverse,
// eigenvalues or a general info summary. A literal from the request
// takes precedence; with only dimensions supplied a uniform-random
// matrix in [0,1) is generated, which makes the info path the one
// documented non-idempotent branch of the pipeline.
func matrixOperations(p Params) Result {
	var m *mat.Dense
	switch {
	case len(p.Values) > 0:
		rows := len(p.Values)
		cols := len(p.Values[0])
		data := make([]float64, 0, rows*cols)
		for _, row := range p.Values {
			if len(row) != cols {
				return messageResult("Error performing matrix calculation: rows have unequal lengths")
			}
			data = append(data, row...)
		}
		if cols == 0 {
			return messageResult("Insufficient matrix information provided")
		}
		m = mat.NewDense(rows, cols, data)
	case p.HasDims && p.Rows > 0 && p.Cols > 0:
		data := make([]float64, p.Rows*p.Cols)
		for i := range data {
			data[i] = rand.Float64()
		}
		m = mat.NewDense(p.Rows, p.Cols, data)
	default:
		return messageResult("Insufficient matrix information provided")
	}

	rows, cols := m.Dims()
	switch p.Operation {
	case "determinant":
		if rows != cols {
			return messageResult("Cannot calculate determinant of non-square matrix")
		}
		return scalarResult(mat.Det(m))

	case "inverse":
		if rows != cols {
			return messageResult("Cannot calculate inverse of non-square matrix")
		}
		if math.Abs(mat.Det(m)) < 1e-12 {
			return messageResult("Matrix is singular, cannot compute inverse")
		}
		var inv mat.Dense
		if err := inv.Inverse(m); err != nil {
			if _, conditioned := err.(mat.Condition); !conditioned {
				return messageResult("Matrix is singular, cannot compute inverse")
			}
		}
		return matrixResult(&inv)

	case "eigenvalues":
		if rows != cols {
			return messageResult("Cannot calculate eigenvalues of non-square matrix")
		}
		var eig mat.Eigen
		if !eig.Factorize(m, mat.EigenNone) {
			return messageResult("Error performing matrix calculation: eigenvalue decomposition failed")
		}
		return vectorResult(eig.Values(nil))

	default: // info
		return messageResult(fmt.Sprintf(
			"Matrix information:\nShape: (%d, %d)\nRank: %d\nFrobenius Norm: %.4f",
			rows, cols, matrixRank(m), mat.Norm(m, 2)))
	}
}

// matrixRank counts singular values above the conventional tolerance
// of max(dim) * eps relative to the largest singular value.
func matrixRank(m *mat.Dense) int {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0
	}
	largest := values[0]
	for _, v := range values {
		if v > largest {
			largest = v
		}
	}
	rows, cols := m.Dims()
	dim := rows
	if cols > dim {
		dim = cols
	}
	tol := largest * float64(dim) * 2.220446049250313e-16
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank
}
