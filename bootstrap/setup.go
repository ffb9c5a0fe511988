package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"gorm.io/gorm"

	"github.com/va6996/mathdesk/agents"
	"github.com/va6996/mathdesk/bootstrap/aoai"
	"github.com/va6996/mathdesk/config"
	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
	"github.com/va6996/mathdesk/plugins/calc"
	"github.com/va6996/mathdesk/providers/assistants"
	"github.com/va6996/mathdesk/tools"
)

// App holds the initialized components of the application
type App struct {
	Desk       *agents.Desk
	Chat       *agents.ChatAgent
	Genkit     *genkit.Genkit
	Registry   *tools.Registry
	Model      ai.Model
	DB         *gorm.DB
	Assistants *assistants.Client
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Setup Genkit with AI Plugin
	var gk *genkit.Genkit
	var model ai.Model

	switch cfg.AI.Plugin {
	case "ollama":
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		// Explicitly enable tool support on the chat model
		model = ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})

	case "azure":
		log.Infof(ctx, "Using Azure OpenAI Plugin (Deployment: %s)...", cfg.AI.Azure.Deployment)
		if cfg.AI.Azure.Endpoint == "" || cfg.AI.Azure.APIKey == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY must be set")
		}
		azurePlugin := &aoai.AzureOpenAI{
			Endpoint:   cfg.AI.Azure.Endpoint,
			APIKey:     cfg.AI.Azure.APIKey,
			APIVersion: cfg.AI.Azure.APIVersion,
			Deployment: cfg.AI.Azure.Deployment,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(azurePlugin))
		model = azurePlugin.Model(gk, cfg.AI.Azure.Deployment)

	default:
		log.Info(ctx, "Using Gemini Plugin...")
		if cfg.AI.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set (or set AI_PLUGIN=ollama or azure)")
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		model = googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model)
	}

	// 2. Init Tools Registry with the calculator tools
	registry := tools.NewRegistry()
	(&calc.Plugin{}).RegisterTools(gk, registry)
	log.Infof(ctx, "Registered tools: %v", registry.Names())

	// 3. Open the store
	db, err := orm.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := orm.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := orm.CleanupCache(db); err != nil {
		log.Warnf(ctx, "Failed to sweep expired cache entries: %v", err)
	}

	// 4. Hosted assistants client, when enabled
	var assistantsClient *assistants.Client
	if cfg.Assistants.Enabled {
		if cfg.AI.Azure.Endpoint == "" || cfg.AI.Azure.APIKey == "" {
			return nil, fmt.Errorf("assistants are enabled but AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY are not set")
		}
		assistantsClient = assistants.NewClient(
			cfg.AI.Azure.Endpoint,
			cfg.AI.Azure.APIKey,
			cfg.AI.Azure.APIVersion,
			time.Duration(cfg.Assistants.PollMillis)*time.Millisecond,
		)
		assistantsClient.RunTimeout = time.Duration(cfg.Assistants.TimeoutSecs) * time.Second
	}

	// 5. Compose agents and the desk
	log.Info(ctx, "Initializing Agents...")
	calculator := agents.NewCalculatorAgent()
	chat := agents.NewChatAgent(gk, registry, model)
	if cfg.Cache.TTLSecs > 0 {
		chat = chat.WithCache(db, time.Duration(cfg.Cache.TTLSecs)*time.Second)
	}
	desk := agents.NewDesk(calculator, chat, assistantsClient, db)

	return &App{
		Desk:       desk,
		Chat:       chat,
		Genkit:     gk,
		Registry:   registry,
		Model:      model,
		DB:         db,
		Assistants: assistantsClient,
	}, nil
}
