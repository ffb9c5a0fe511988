package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorAgentRespond(t *testing.T) {
	agent := NewCalculatorAgent()
	ctx := context.Background()

	response, err := agent.Respond(ctx, "what is 2 + 2")
	require.NoError(t, err)
	assert.Equal(t, "Result: 4", response)

	// Every input yields an answer string, never an error
	for _, query := range []string{"", "tell me a joke", "solve x**2 - 1 = 0 for x"} {
		response, err := agent.Respond(ctx, query)
		assert.NoError(t, err)
		assert.NotEmpty(t, response)
	}
}

func TestCalculatorAgentName(t *testing.T) {
	assert.Equal(t, "CalculatorAgent", NewCalculatorAgent().Name())
}
