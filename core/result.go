package core

import (
	"gonum.org/v1/gonum/mat"

	"github.com/va6996/mathdesk/symbolic"
)

type resultKind int

const (
	kindMessage resultKind = iota
	kindScalar
	kindText
	kindVector
	kindMatrix
	kindExpr
	kindSolutions
	kindStats
)

// statEntry is one named statistic. Entries keep insertion order so
// the formatted summary reads the same every time.
type statEntry struct {
	key   string
	value float64
}

// Result is the typed output of an operation handler. Handlers never
// return Go errors across the pipeline boundary; failures of any kind
// become message results, which the formatter passes through as
// already-complete sentences.
type Result struct {
	kind resultKind

	num      float64
	text     string
	vec      []complex128
	matrix   *mat.Dense
	expr     symbolic.Expr
	roots    []symbolic.Expr
	variable string
	stats    []statEntry
	msg      string
}

func messageResult(msg string) Result {
	return Result{kind: kindMessage, msg: msg}
}

func scalarResult(v float64) Result {
	return Result{kind: kindScalar, num: v}
}

// textResult carries a short pre-rendered value (for example an
// infinite limit) that still wants the standard "Result: " prefix.
func textResult(s string) Result {
	return Result{kind: kindText, text: s}
}

func vectorResult(vals []complex128) Result {
	return Result{kind: kindVector, vec: vals}
}

func matrixResult(m *mat.Dense) Result {
	return Result{kind: kindMatrix, matrix: m}
}

func exprResult(e symbolic.Expr) Result {
	return Result{kind: kindExpr, expr: e}
}

func solutionsResult(variable string, roots []symbolic.Expr) Result {
	return Result{kind: kindSolutions, variable: variable, roots: roots}
}

func statsResult(entries []statEntry) Result {
	return Result{kind: kindStats, stats: entries}
}
