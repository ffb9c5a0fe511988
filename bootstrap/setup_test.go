package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/va6996/mathdesk/config"
	"github.com/va6996/mathdesk/orm"
)

func ollamaConfig(dsn string) *config.Config {
	cfg := &config.Config{}
	cfg.AI.Plugin = "ollama"
	cfg.AI.Ollama.Model = "qwen3:4b"
	cfg.AI.Ollama.BaseURL = "http://localhost:11434"
	cfg.DB.Driver = "sqlite"
	cfg.DB.DSN = dsn
	return cfg
}

func TestSetupEnablesResponseCache(t *testing.T) {
	dsn := "file:bootstrap_cache?mode=memory&cache=shared"

	// Seed an expired entry through a handle on the same shared
	// in-memory database; Setup's startup sweep should remove it.
	seed, err := orm.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, orm.Migrate(seed))
	require.NoError(t, orm.SetCachedResponse(seed, "stale-key", "stale-value", -time.Hour))

	cfg := ollamaConfig(dsn)
	cfg.Cache.TTLSecs = 60

	app, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Desk)
	require.NotNil(t, app.Chat)

	assert.Equal(t, 60*time.Second, app.Chat.CacheTTL())

	var count int64
	require.NoError(t, seed.Model(&orm.ResponseCache{}).Where("key = ?", "stale-key").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSetupWithoutCacheTTL(t *testing.T) {
	cfg := ollamaConfig("file:bootstrap_nocache?mode=memory&cache=shared")

	app, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.Zero(t, app.Chat.CacheTTL())
	assert.Contains(t, app.Registry.Names(), "calculate")
}
