package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
)

// cleanArithmetic strips the request down to a whitelist of arithmetic
// characters, rewrites ^ into the evaluator's power operator and drops
// whitespace. It returns "" when the remainder has no digits or
// unbalanced parentheses.
func cleanArithmetic(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' ||
			r == '(' || r == ')' || r == '.':
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), "^", "**")

	hasDigit := strings.ContainsAny(cleaned, "0123456789")
	if cleaned == "" || !hasDigit {
		return ""
	}
	if strings.Count(cleaned, "(") != strings.Count(cleaned, ")") {
		return ""
	}
	return cleaned
}

// evaluateArithmetic is the fallback handler for requests with no
// structured category. The cleaned expression is compiled with no
// environment, so the evaluator can resolve nothing beyond numeric
// literals and operators; free-text input cannot reach an identifier.
func evaluateArithmetic(query string) Result {
	cleaned := cleanArithmetic(query)
	if cleaned == "" {
		return messageResult("I couldn't parse a valid calculation from your request.")
	}

	program, err := expr.Compile(cleaned)
	if err != nil {
		return messageResult(fmt.Sprintf("Error evaluating expression: %v", err))
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return messageResult(fmt.Sprintf("Error evaluating expression: %v", err))
	}

	switch v := out.(type) {
	case int:
		return scalarResult(float64(v))
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return messageResult(fmt.Sprintf("Error evaluating expression: division by zero in %s", cleaned))
		}
		return scalarResult(v)
	default:
		return messageResult(fmt.Sprintf("Error evaluating expression: unexpected result %v", out))
	}
}
