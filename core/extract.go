package core

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Params holds the structured arguments extracted from request text.
// Which fields are meaningful depends on the category; missing fields
// are a valid state the handlers report as insufficient information.
type Params struct {
	Operation string

	// Matrix
	Values     [][]float64
	Rows, Cols int
	HasDims    bool

	// Statistics
	Data []float64

	// Algebra, calculus and the raw arithmetic text
	Expression string

	// Equation
	Equation string

	// Calculus and equation
	Variable    string
	Approach    float64
	HasApproach bool
}

var (
	reMatrixDims    = regexp.MustCompile(`matrix\s+of\s+(?:size\s+)?(\d+)(?:\s*x\s*|\s+by\s+)(\d+)`)
	reMatrixLiteral = regexp.MustCompile(`\[\s*\[.*?\](?:\s*,\s*\[.*?\])*\s*\]`)
	reNumber        = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)
	reEquationText  = regexp.MustCompile(`(?:solve|equation)\s+(.*?)(?:$|for\s+)`)
	reSolveVar      = regexp.MustCompile(`for\s+([a-z])`)
	reCalcExpr      = regexp.MustCompile(`(?:of|expression)\s+(.*?)(?:$|with\s+respect)`)
	reCalcVar       = regexp.MustCompile(`(?:with\s+respect\s+to|regarding|for)\s+([a-z])`)
	reApproach      = regexp.MustCompile(`approach(?:es|ing)?\s+([-+]?\d*\.\d+|\d+|infinity)`)
	reAlgebraExpr   = regexp.MustCompile(`(?:expression|polynomial)\s+(.*?)(?:$|\s+)`)
)

// Extract pulls the structured parameters the category's handler needs
// out of the request text. Extraction is best-effort and regex-only:
// an absent pattern leaves the field empty rather than failing, and
// the handler decides whether that is fatal for the operation.
func Extract(request string, cat Category) Params {
	query := strings.ToLower(request)
	var p Params

	switch cat {
	case CategoryMatrix:
		if m := reMatrixDims.FindStringSubmatch(query); m != nil {
			p.Rows, _ = strconv.Atoi(m[1])
			p.Cols, _ = strconv.Atoi(m[2])
			p.HasDims = true
		}
		if literal := reMatrixLiteral.FindString(query); literal != "" {
			p.Values = parseMatrixValues(literal)
		}
		switch {
		case strings.Contains(query, "determinant"):
			p.Operation = "determinant"
		case strings.Contains(query, "inverse"):
			p.Operation = "inverse"
		case strings.Contains(query, "eigenvalue"):
			p.Operation = "eigenvalues"
		default:
			p.Operation = "info"
		}

	case CategoryStatistics:
		for _, tok := range reNumber.FindAllString(query, -1) {
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				p.Data = append(p.Data, v)
			}
		}
		switch {
		case strings.Contains(query, "mean"):
			p.Operation = "mean"
		case strings.Contains(query, "median"):
			p.Operation = "median"
		case strings.Contains(query, "variance"):
			p.Operation = "variance"
		case strings.Contains(query, "standard deviation"):
			p.Operation = "std"
		case strings.Contains(query, "correlation"):
			p.Operation = "correlation"
		default:
			p.Operation = "summary"
		}

	case CategoryEquation:
		if m := reEquationText.FindStringSubmatch(query); m != nil {
			p.Equation = strings.TrimSpace(m[1])
		}
		p.Variable = "x"
		if m := reSolveVar.FindStringSubmatch(query); m != nil {
			p.Variable = m[1]
		}

	case CategoryCalculus:
		if m := reCalcExpr.FindStringSubmatch(query); m != nil {
			p.Expression = strings.TrimSpace(m[1])
		}
		p.Variable = "x"
		if m := reCalcVar.FindStringSubmatch(query); m != nil {
			p.Variable = m[1]
		}
		switch {
		case strings.Contains(query, "derivative"), strings.Contains(query, "differentiate"):
			p.Operation = "derivative"
		case strings.Contains(query, "integrate"):
			p.Operation = "integrate"
		case strings.Contains(query, "limit"):
			p.Operation = "limit"
			if m := reApproach.FindStringSubmatch(query); m != nil {
				if m[1] == "infinity" {
					p.Approach = math.Inf(1)
				} else if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					p.Approach = v
				}
				p.HasApproach = true
			}
		}

	case CategoryAlgebra:
		if m := reAlgebraExpr.FindStringSubmatch(query); m != nil {
			p.Expression = strings.TrimSpace(m[1])
		}
		switch {
		case strings.Contains(query, "factor"):
			p.Operation = "factor"
		case strings.Contains(query, "expand"):
			p.Operation = "expand"
		default:
			p.Operation = "simplify"
		}

	default:
		// Arithmetic carries the raw text; the dispatcher owns the
		// cleaning and evaluation of it.
		p.Expression = query
	}

	return p
}

// parseMatrixValues turns a bracketed nested-list literal into rows of
// floats. A strict JSON parse (after quote normalization) is tried
// first; if that fails, a literal-only scan over numbers, commas and
// brackets takes over. The fallback never evaluates anything beyond
// numeric tokens.
func parseMatrixValues(literal string) [][]float64 {
	normalized := strings.ReplaceAll(literal, "'", `"`)
	var values [][]float64
	if err := json.Unmarshal([]byte(normalized), &values); err == nil && len(values) > 0 {
		return values
	}
	if values, ok := scanMatrixLiteral(literal); ok {
		return values
	}
	return nil
}

func scanMatrixLiteral(s string) ([][]float64, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if len(s) < 4 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}

	inner := s[1 : len(s)-1]
	var rows [][]float64
	for len(inner) > 0 {
		if inner[0] == ',' {
			inner = inner[1:]
			continue
		}
		if inner[0] != '[' {
			return nil, false
		}
		end := strings.IndexByte(inner, ']')
		if end < 0 {
			return nil, false
		}
		var row []float64
		for _, tok := range strings.Split(inner[1:end], ",") {
			if tok == "" {
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, false
			}
			row = append(row, v)
		}
		rows = append(rows, row)
		inner = inner[end+1:]
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows, true
}
