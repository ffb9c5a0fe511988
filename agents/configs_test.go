package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentConfigs(t *testing.T) {
	configs := AgentConfigs()
	require.Len(t, configs, 2)
	assert.Equal(t, KeyCalculator, configs[0].Key)
	assert.Equal(t, KeyChat, configs[1].Key)

	for _, cfg := range configs {
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.Instructions)
		assert.NotEmpty(t, cfg.Model)
	}
}

func TestAgentConfigFor(t *testing.T) {
	cfg, ok := AgentConfigFor(KeyCalculator)
	require.True(t, ok)
	assert.Equal(t, "CalculatorAgent", cfg.Name)

	_, ok = AgentConfigFor("weather")
	assert.False(t, ok)
}

func TestAgentConfigsReturnsCopy(t *testing.T) {
	configs := AgentConfigs()
	configs[0].Name = "mutated"

	cfg, _ := AgentConfigFor(KeyCalculator)
	assert.Equal(t, "CalculatorAgent", cfg.Name)
}
