package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Format renders a handler result as the final human-readable answer.
// Message results are already complete sentences and pass through
// unchanged; everything else gets the "Result:" prefix, with matrices
// and vectors printed at fixed four-decimal precision. No input can
// make Format return an empty string.
func Format(res Result, cat Category) string {
	switch res.kind {
	case kindMessage:
		return res.msg

	case kindScalar:
		return "Result: " + formatFloat(res.num)

	case kindText:
		return "Result: " + res.text

	case kindMatrix:
		return "Result:\n" + renderMatrix(res)

	case kindVector:
		return "Result:\n" + renderVector(res.vec)

	case kindExpr:
		return "Result: " + res.expr.String()

	case kindSolutions:
		if len(res.roots) == 1 {
			return fmt.Sprintf("Result: %s = %s", res.variable, res.roots[0])
		}
		parts := make([]string, len(res.roots))
		for i, r := range res.roots {
			parts[i] = r.String()
		}
		return fmt.Sprintf("Result: %s = [%s]", res.variable, strings.Join(parts, ", "))

	case kindStats:
		lines := make([]string, len(res.stats))
		for i, entry := range res.stats {
			lines[i] = fmt.Sprintf("%s: %s", titleCaser.String(entry.key), formatFloat(entry.value))
		}
		return strings.Join(lines, "\n")
	}

	// Unrecognized result shapes fall through to the generic form so
	// the pipeline stays total for every category.
	return "Result: " + formatFloat(res.num)
}

// formatFloat prints a scalar in the shortest exact decimal form,
// with NaN and infinities spelled out rather than crashing a caller
// that string-matches results.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFixed prints a matrix entry at four decimals, suppressing
// scientific notation and normalizing near-zero values so random
// matrices never print "-0.0000".
func formatFixed(v float64) string {
	if math.Abs(v) < 5e-5 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func renderMatrix(res Result) string {
	rows, cols := res.matrix.Dims()
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString("\n ")
		}
		b.WriteByte('[')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatFixed(res.matrix.At(i, j)))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

func renderVector(vals []complex128) string {
	allReal := true
	for _, v := range vals {
		if math.Abs(imag(v)) > 1e-10 {
			allReal = false
			break
		}
	}

	parts := make([]string, len(vals))
	for i, v := range vals {
		if allReal {
			parts[i] = formatFixed(real(v))
		} else {
			im := formatFixed(imag(v))
			if !strings.HasPrefix(im, "-") {
				im = "+" + im
			}
			parts[i] = formatFixed(real(v)) + im + "i"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
