package agents

// AgentConfig is the static definition of one deployable agent
type AgentConfig struct {
	Key          string
	Name         string
	Description  string
	Instructions string
	Model        string
}

// Agent keys accepted by the desk and the deploy CLI
const (
	KeyCalculator = "calculator"
	KeyChat       = "chat"
)

var agentConfigs = []AgentConfig{
	{
		Key:         KeyCalculator,
		Name:        "CalculatorAgent",
		Description: "Specialist agent for mathematical operations",
		Instructions: "You are a calculator specialist agent that performs advanced mathematical operations. " +
			"You have access to powerful mathematical capabilities through your calculator tools. " +
			"When asked about calculations, always use the appropriate tool to get accurate results. " +
			"For general calculations, use the calculate tool. " +
			"For matrix operations, use the matrix_operation tool. " +
			"For statistical analysis, use the statistics tool. " +
			"For algebraic operations, use the algebra tool. " +
			"For equation solving, use the solve_equation tool. " +
			"For calculus operations, use the calculus tool. " +
			"Provide your answers in a clear, concise manner, showing the steps of calculation " +
			"when useful for understanding. " +
			"If asked something not related to mathematics, politely explain " +
			"that you specialize in calculations and mathematical operations only.",
		Model: "gpt-35-turbo",
	},
	{
		Key:         KeyChat,
		Name:        "ChatAgent",
		Description: "General conversational agent",
		Instructions: "You are a helpful assistant that provides friendly, concise, and accurate information. " +
			"You should be conversational but prioritize accuracy and brevity over verbosity. " +
			"If you don't know something, admit it clearly rather than making guesses. " +
			"If the question involves mathematical calculations, equations, matrices, statistics, " +
			"algebra, or calculus, inform the user that you'll need to ask the specialist " +
			"calculator agent to get an accurate answer.",
		Model: "gpt-35-turbo",
	},
}

// AgentConfigs returns every agent definition in deterministic order
func AgentConfigs() []AgentConfig {
	out := make([]AgentConfig, len(agentConfigs))
	copy(out, agentConfigs)
	return out
}

// AgentConfigFor looks up one agent definition by key
func AgentConfigFor(key string) (AgentConfig, bool) {
	for _, cfg := range agentConfigs {
		if cfg.Key == key {
			return cfg, true
		}
	}
	return AgentConfig{}, false
}
