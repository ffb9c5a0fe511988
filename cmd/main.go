// Interactive calculator REPL. Calculator messages are answered
// locally; chat messages go through the desk, or straight to a model
// client in -local mode.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/va6996/mathdesk/agents"
	"github.com/va6996/mathdesk/bootstrap"
	"github.com/va6996/mathdesk/config"
	logcontext "github.com/va6996/mathdesk/context"
	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/plugins"
	"github.com/va6996/mathdesk/plugins/ollama"
	"github.com/va6996/mathdesk/providers/gemini"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	agentFlag := flag.String("agent", agents.KeyCalculator, "agent to talk to: calculator or chat")
	localFlag := flag.Bool("local", false, "answer chat locally with a direct model client instead of the desk")
	flag.Parse()

	log.Init(os.Getenv("LOG_LEVEL"))
	log.SetOutput(os.Stderr)

	ctx := logcontext.WithThreadID(context.Background(), logcontext.NewThreadID())

	session := &replSession{
		agent:      *agentFlag,
		local:      *localFlag,
		calculator: agents.NewCalculatorAgent(),
	}
	if _, ok := agents.AgentConfigFor(session.agent); !ok {
		fmt.Fprintf(os.Stderr, "unknown agent %q, starting with calculator\n", session.agent)
		session.agent = agents.KeyCalculator
	}

	fmt.Println("mathdesk - type a calculation, 'switch <agent>' to change agents, 'exit' to quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", session.agent)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if target, ok := strings.CutPrefix(line, "switch "); ok {
			target = strings.TrimSpace(target)
			if _, known := agents.AgentConfigFor(target); !known {
				fmt.Printf("unknown agent %q, staying on %s\n", target, session.agent)
				continue
			}
			session.agent = target
			// Drop the cached client so the new agent's instructions apply.
			session.llm = nil
			fmt.Printf("now talking to %s\n", session.agent)
			continue
		}

		response, err := session.respond(ctx, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(response)
	}
}

type replSession struct {
	agent      string
	local      bool
	calculator *agents.CalculatorAgent

	desk     *agents.Desk
	llm      plugins.LLMClient
	threadID string
}

func (s *replSession) respond(ctx context.Context, line string) (string, error) {
	if s.agent == agents.KeyCalculator {
		return s.calculator.Respond(ctx, line)
	}
	if s.local {
		return s.respondLocal(ctx, line)
	}
	return s.respondViaDesk(ctx, line)
}

// respondViaDesk lazily bootstraps the full app so a calculator-only
// session never needs model credentials.
func (s *replSession) respondViaDesk(ctx context.Context, line string) (string, error) {
	if s.desk == nil {
		cfg, err := config.Load()
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		app, err := bootstrap.Setup(ctx, cfg)
		if err != nil {
			return "", fmt.Errorf("setup failed: %w", err)
		}
		s.desk = app.Desk
	}

	reply, err := s.desk.SendMessage(ctx, s.agent, s.threadID, line)
	if err != nil {
		return "", err
	}
	s.threadID = reply.ThreadID
	return reply.Response, nil
}

// respondLocal talks to a model directly: gemini when a key is set,
// ollama otherwise.
func (s *replSession) respondLocal(ctx context.Context, line string) (string, error) {
	cfg, _ := agents.AgentConfigFor(s.agent)

	if s.llm == nil {
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := gemini.NewClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
			if err != nil {
				return "", err
			}
			s.llm = client
		} else {
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL == "" {
				baseURL = "http://localhost:11434"
			}
			model := os.Getenv("OLLAMA_MODEL")
			if model == "" {
				model = "qwen3:4b"
			}
			s.llm = ollama.NewClient(baseURL, model).WithSystem(cfg.Instructions)
		}
	}

	if _, isOllama := s.llm.(*ollama.Client); isOllama {
		return s.llm.GenerateContent(ctx, line)
	}
	prompt := cfg.Instructions + "\n\nUser: " + line
	return s.llm.GenerateContent(ctx, prompt)
}
