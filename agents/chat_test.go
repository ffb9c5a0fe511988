package agents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAgentName(t *testing.T) {
	agent := NewChatAgent(nil, nil, nil)
	assert.Equal(t, "ChatAgent", agent.Name())
}

func TestChatAgentResponseCache(t *testing.T) {
	db := setupDeskDB(t, "chat_cache")
	agent := NewChatAgent(nil, nil, nil).WithCache(db, time.Minute)
	ctx := context.Background()

	// Nothing cached yet
	_, ok := agent.cachedResponse(ctx, "hello")
	assert.False(t, ok)

	agent.storeResponse(ctx, "hello", "Hi there")

	cached, ok := agent.cachedResponse(ctx, "hello")
	require.True(t, ok)
	assert.Equal(t, "Hi there", cached)

	// A different query misses
	_, ok = agent.cachedResponse(ctx, "hello there")
	assert.False(t, ok)
}

func TestChatAgentCacheDisabled(t *testing.T) {
	agent := NewChatAgent(nil, nil, nil)
	ctx := context.Background()

	// Without a store the cache is a no-op
	agent.storeResponse(ctx, "hello", "Hi there")
	_, ok := agent.cachedResponse(ctx, "hello")
	assert.False(t, ok)
}
