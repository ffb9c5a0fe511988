package agents

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"gorm.io/gorm"

	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
	"github.com/va6996/mathdesk/tools"
)

// ChatAgent answers general queries with the configured model. The
// calculator tools are attached so the model delegates math instead of
// improvising it. An optional response cache short-circuits repeated
// identical prompts; calculator answers never go through it because
// the random-matrix path is intentionally not idempotent.
type ChatAgent struct {
	genkit   *genkit.Genkit
	registry *tools.Registry
	model    ai.Model
	config   AgentConfig
	db       *gorm.DB
	cacheTTL time.Duration
}

var _ Responder = (*ChatAgent)(nil)

// NewChatAgent creates a new ChatAgent with native tool calling
func NewChatAgent(gk *genkit.Genkit, registry *tools.Registry, model ai.Model) *ChatAgent {
	config, _ := AgentConfigFor(KeyChat)
	return &ChatAgent{
		genkit:   gk,
		registry: registry,
		model:    model,
		config:   config,
	}
}

// WithCache enables response caching with the given store and TTL
func (a *ChatAgent) WithCache(db *gorm.DB, ttl time.Duration) *ChatAgent {
	a.db = db
	a.cacheTTL = ttl
	return a
}

// CacheTTL reports the configured cache TTL, zero when caching is off
func (a *ChatAgent) CacheTTL() time.Duration {
	return a.cacheTTL
}

func (a *ChatAgent) Name() string {
	return a.config.Name
}

// Respond generates a reply, letting the model call calculator tools
func (a *ChatAgent) Respond(ctx context.Context, query string) (string, error) {
	if cached, ok := a.cachedResponse(ctx, query); ok {
		return cached, nil
	}

	var toolRefs []ai.ToolRef
	if a.registry != nil {
		for _, tool := range a.registry.GetTools() {
			toolRefs = append(toolRefs, tool)
		}
	}

	log.Debugf(ctx, "ChatAgent generating with %d tools", len(toolRefs))
	response, err := genkit.Generate(ctx,
		a.genkit,
		ai.WithModel(a.model),
		ai.WithSystem(a.config.Instructions),
		ai.WithPrompt(query),
		ai.WithTools(toolRefs...),
		ai.WithMaxTurns(5),
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := response.Text()
	a.storeResponse(ctx, query, text)
	return text, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte("chat:" + query))
	return hex.EncodeToString(sum[:])
}

func (a *ChatAgent) cachedResponse(ctx context.Context, query string) (string, bool) {
	if a.db == nil || a.cacheTTL <= 0 {
		return "", false
	}
	entry, err := orm.GetCachedResponse(a.db, cacheKey(query))
	if err != nil {
		return "", false
	}
	log.Debugf(ctx, "ChatAgent cache hit")
	return entry.Value, true
}

func (a *ChatAgent) storeResponse(ctx context.Context, query, text string) {
	if a.db == nil || a.cacheTTL <= 0 || text == "" {
		return
	}
	if err := orm.SetCachedResponse(a.db, cacheKey(query), text, a.cacheTTL); err != nil {
		log.Warnf(ctx, "ChatAgent failed to cache response: %v", err)
	}
}
