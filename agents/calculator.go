package agents

import (
	"context"

	"github.com/va6996/mathdesk/core"
	"github.com/va6996/mathdesk/log"
)

// CalculatorAgent answers math requests locally through the calculator
// pipeline. It is deterministic, needs no network, and always produces
// an answer string.
type CalculatorAgent struct{}

var _ Responder = (*CalculatorAgent)(nil)

// NewCalculatorAgent creates a new CalculatorAgent
func NewCalculatorAgent() *CalculatorAgent {
	return &CalculatorAgent{}
}

func (a *CalculatorAgent) Name() string {
	return "CalculatorAgent"
}

// Respond runs the request through the calculator pipeline
func (a *CalculatorAgent) Respond(ctx context.Context, query string) (string, error) {
	log.Debugf(ctx, "CalculatorAgent handling: %s", query)
	return core.Evaluate(query), nil
}
