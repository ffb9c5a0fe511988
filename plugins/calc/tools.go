// Package calc exposes the calculator pipeline as AI tools so a
// conversational agent can delegate math instead of guessing at it.
// Each tool parses its structured arguments, builds handler params and
// runs them through the dispatcher, returning a formatted string.
package calc

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/va6996/mathdesk/core"
	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/tools"
)

// parseMatrix turns a nested-list string like [[1,2],[3,4]] into rows.
// Single quotes are tolerated the way the agent models tend to emit them.
func parseMatrix(s string) ([][]float64, error) {
	normalized := strings.ReplaceAll(s, "'", `"`)
	var values [][]float64
	if err := json.Unmarshal([]byte(normalized), &values); err != nil {
		return nil, fmt.Errorf("failed to parse matrix %q: %w", s, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("matrix is empty")
	}
	return values, nil
}

// parseData splits a comma-separated number list
func parseData(s string) ([]float64, error) {
	var data []float64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse number %q: %w", tok, err)
		}
		data = append(data, v)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no numbers provided")
	}
	return data, nil
}

func orDefaultVariable(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "x"
	}
	return v
}

// registerTool wires one typed tool into genkit and the registry. The
// registry executor re-parses map args through JSON so both invocation
// paths share the typed handler.
func registerTool[In any](gk *genkit.Genkit, registry *tools.Registry, name, description string, run func(ctx context.Context, input *In) (string, error)) {
	if gk == nil || registry == nil {
		return
	}
	registry.Register(genkit.DefineTool[*In, string](
		gk,
		name,
		description,
		func(ctx *ai.ToolContext, input *In) (string, error) {
			if input == nil {
				return "", fmt.Errorf("input required")
			}
			return run(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := new(In)
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return run(ctx, in)
	})
}

// CalculateTool evaluates a free-form request through the full pipeline
type CalculateTool struct{}

type CalculateInput struct {
	Expression string `json:"expression" description:"Mathematical expression or natural-language request to evaluate"`
}

func (t *CalculateTool) Name() string { return "calculate" }

func (t *CalculateTool) Description() string {
	return "Evaluates a math expression or natural-language request. Handles arithmetic and routes matrix, statistics, algebra, calculus and equation requests to the right handler."
}

func (t *CalculateTool) Run(ctx context.Context, input *CalculateInput) (string, error) {
	if input.Expression == "" {
		return "", fmt.Errorf("expression is required")
	}
	log.Debugf(ctx, "CalculateTool executing: %s", input.Expression)
	return core.Evaluate(input.Expression), nil
}

func (t *CalculateTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	expression, _ := args["expression"].(string)
	return t.Run(ctx, &CalculateInput{Expression: expression})
}

func NewCalculateTool(gk *genkit.Genkit, registry *tools.Registry) *CalculateTool {
	t := &CalculateTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// MatrixTool runs a named operation over an explicit matrix
type MatrixTool struct{}

type MatrixInput struct {
	Operation string `json:"operation" description:"Operation to perform: determinant, inverse, eigenvalues or info"`
	Matrix    string `json:"matrix" description:"Matrix as a nested list, e.g. [[1,2],[3,4]]"`
}

func (t *MatrixTool) Name() string { return "matrix_operation" }

func (t *MatrixTool) Description() string {
	return "Performs matrix operations (determinant, inverse, eigenvalues, info) on a matrix given as [[a,b],[c,d]]."
}

func (t *MatrixTool) Run(ctx context.Context, input *MatrixInput) (string, error) {
	values, err := parseMatrix(input.Matrix)
	if err != nil {
		return "", err
	}
	p := core.Params{
		Operation: strings.ToLower(strings.TrimSpace(input.Operation)),
		Values:    values,
	}
	log.Debugf(ctx, "MatrixTool executing %s on %dx%d matrix", p.Operation, len(values), len(values[0]))
	return core.Format(core.Dispatch(core.CategoryMatrix, p), core.CategoryMatrix), nil
}

func (t *MatrixTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	operation, _ := args["operation"].(string)
	matrix, _ := args["matrix"].(string)
	return t.Run(ctx, &MatrixInput{Operation: operation, Matrix: matrix})
}

func NewMatrixTool(gk *genkit.Genkit, registry *tools.Registry) *MatrixTool {
	t := &MatrixTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// StatisticsTool runs a statistical operation over a dataset
type StatisticsTool struct{}

type StatisticsInput struct {
	Operation string `json:"operation" description:"Operation to perform: mean, median, variance, std, correlation or summary"`
	Data      string `json:"data" description:"Dataset as a comma-separated list of numbers"`
}

func (t *StatisticsTool) Name() string { return "statistics" }

func (t *StatisticsTool) Description() string {
	return "Performs statistical analysis (mean, median, variance, std, correlation, summary) on a comma-separated dataset."
}

func (t *StatisticsTool) Run(ctx context.Context, input *StatisticsInput) (string, error) {
	data, err := parseData(input.Data)
	if err != nil {
		return "", err
	}
	p := core.Params{
		Operation: strings.ToLower(strings.TrimSpace(input.Operation)),
		Data:      data,
	}
	log.Debugf(ctx, "StatisticsTool executing %s over %d values", p.Operation, len(data))
	return core.Format(core.Dispatch(core.CategoryStatistics, p), core.CategoryStatistics), nil
}

func (t *StatisticsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	operation, _ := args["operation"].(string)
	data, _ := args["data"].(string)
	return t.Run(ctx, &StatisticsInput{Operation: operation, Data: data})
}

func NewStatisticsTool(gk *genkit.Genkit, registry *tools.Registry) *StatisticsTool {
	t := &StatisticsTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// EquationTool solves an equation for a variable
type EquationTool struct{}

type EquationInput struct {
	Equation string `json:"equation" description:"Equation to solve, e.g. x**2 - 5*x + 6 = 0"`
	Variable string `json:"variable,omitempty" description:"Variable to solve for (default x)"`
}

func (t *EquationTool) Name() string { return "solve_equation" }

func (t *EquationTool) Description() string {
	return "Solves a polynomial equation for a variable."
}

func (t *EquationTool) Run(ctx context.Context, input *EquationInput) (string, error) {
	if strings.TrimSpace(input.Equation) == "" {
		return "", fmt.Errorf("equation is required")
	}
	p := core.Params{
		Equation: strings.ToLower(strings.TrimSpace(input.Equation)),
		Variable: orDefaultVariable(input.Variable),
	}
	log.Debugf(ctx, "EquationTool solving %s for %s", p.Equation, p.Variable)
	return core.Format(core.Dispatch(core.CategoryEquation, p), core.CategoryEquation), nil
}

func (t *EquationTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	equation, _ := args["equation"].(string)
	variable, _ := args["variable"].(string)
	return t.Run(ctx, &EquationInput{Equation: equation, Variable: variable})
}

func NewEquationTool(gk *genkit.Genkit, registry *tools.Registry) *EquationTool {
	t := &EquationTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// CalculusTool computes derivatives, integrals and limits
type CalculusTool struct{}

type CalculusInput struct {
	Operation  string `json:"operation" description:"Operation to perform: derivative, integrate or limit"`
	Expression string `json:"expression" description:"Expression to operate on, e.g. x**2 + 3*x"`
	Variable   string `json:"variable,omitempty" description:"Variable to operate with respect to (default x)"`
	Approach   string `json:"approach,omitempty" description:"For limits: the value the variable approaches, a number or 'infinity' (default 0)"`
}

func (t *CalculusTool) Name() string { return "calculus" }

func (t *CalculusTool) Description() string {
	return "Performs calculus operations: derivative, integrate, or limit of an expression."
}

func (t *CalculusTool) Run(ctx context.Context, input *CalculusInput) (string, error) {
	if strings.TrimSpace(input.Expression) == "" {
		return "", fmt.Errorf("expression is required")
	}
	p := core.Params{
		Operation:  strings.ToLower(strings.TrimSpace(input.Operation)),
		Expression: strings.ToLower(strings.TrimSpace(input.Expression)),
		Variable:   orDefaultVariable(input.Variable),
	}
	if approach := strings.TrimSpace(input.Approach); approach != "" {
		if approach == "infinity" {
			p.Approach = math.Inf(1)
			p.HasApproach = true
		} else if v, err := strconv.ParseFloat(approach, 64); err == nil {
			p.Approach = v
			p.HasApproach = true
		} else {
			return "", fmt.Errorf("failed to parse approach value %q", input.Approach)
		}
	}
	log.Debugf(ctx, "CalculusTool executing %s of %s", p.Operation, p.Expression)
	return core.Format(core.Dispatch(core.CategoryCalculus, p), core.CategoryCalculus), nil
}

func (t *CalculusTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	operation, _ := args["operation"].(string)
	expression, _ := args["expression"].(string)
	variable, _ := args["variable"].(string)
	approach, _ := args["approach"].(string)
	return t.Run(ctx, &CalculusInput{Operation: operation, Expression: expression, Variable: variable, Approach: approach})
}

func NewCalculusTool(gk *genkit.Genkit, registry *tools.Registry) *CalculusTool {
	t := &CalculusTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// AlgebraTool simplifies, expands or factors an expression
type AlgebraTool struct{}

type AlgebraInput struct {
	Operation  string `json:"operation" description:"Operation to perform: simplify, expand or factor"`
	Expression string `json:"expression" description:"Polynomial expression to operate on"`
}

func (t *AlgebraTool) Name() string { return "algebra" }

func (t *AlgebraTool) Description() string {
	return "Performs algebraic operations: simplify, expand, or factor a polynomial expression."
}

func (t *AlgebraTool) Run(ctx context.Context, input *AlgebraInput) (string, error) {
	if strings.TrimSpace(input.Expression) == "" {
		return "", fmt.Errorf("expression is required")
	}
	p := core.Params{
		Operation:  strings.ToLower(strings.TrimSpace(input.Operation)),
		Expression: strings.ToLower(strings.TrimSpace(input.Expression)),
	}
	log.Debugf(ctx, "AlgebraTool executing %s of %s", p.Operation, p.Expression)
	return core.Format(core.Dispatch(core.CategoryAlgebra, p), core.CategoryAlgebra), nil
}

func (t *AlgebraTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	operation, _ := args["operation"].(string)
	expression, _ := args["expression"].(string)
	return t.Run(ctx, &AlgebraInput{Operation: operation, Expression: expression})
}

func NewAlgebraTool(gk *genkit.Genkit, registry *tools.Registry) *AlgebraTool {
	t := &AlgebraTool{}
	registerTool(gk, registry, t.Name(), t.Description(), t.Run)
	return t
}

// Plugin registers every calculator tool
type Plugin struct{}

var _ tools.ToolPlugin = (*Plugin)(nil)

// RegisterTools wires all six calculator tools into the registry
func (p *Plugin) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) {
	NewCalculateTool(gk, registry)
	NewMatrixTool(gk, registry)
	NewStatisticsTool(gk, registry)
	NewEquationTool(gk, registry)
	NewCalculusTool(gk, registry)
	NewAlgebraTool(gk, registry)
}
