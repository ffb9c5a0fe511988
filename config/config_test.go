package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		// Save original env vars
		origAIPlugin := os.Getenv("AI_PLUGIN")
		origGeminiKey := os.Getenv("GEMINI_API_KEY")
		origDBDriver := os.Getenv("DB_DRIVER")
		origPort := os.Getenv("PORT")

		// Clear env vars for this test
		os.Unsetenv("AI_PLUGIN")
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("PORT")

		defer func() {
			// Restore original env vars
			if origAIPlugin != "" {
				os.Setenv("AI_PLUGIN", origAIPlugin)
			}
			if origGeminiKey != "" {
				os.Setenv("GEMINI_API_KEY", origGeminiKey)
			}
			if origDBDriver != "" {
				os.Setenv("DB_DRIVER", origDBDriver)
			}
			if origPort != "" {
				os.Setenv("PORT", origPort)
			}
		}()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		// Test default values
		assert.Equal(t, "gemini", cfg.AI.Plugin)
		assert.Equal(t, "qwen3:4b", cfg.AI.Ollama.Model)
		assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
		assert.Equal(t, "sqlite", cfg.DB.Driver)
		assert.Equal(t, "mathdesk.db", cfg.DB.DSN)
		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Assistants.Enabled)
		assert.Equal(t, 500, cfg.Assistants.PollMillis)
		assert.Equal(t, 120, cfg.Assistants.TimeoutSecs)
		assert.Equal(t, 0, cfg.Cache.TTLSecs)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		// Save original env vars
		origAIPlugin := os.Getenv("AI_PLUGIN")
		origAzureEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
		origAssistants := os.Getenv("ASSISTANTS_ENABLED")

		// Set test env vars
		os.Setenv("AI_PLUGIN", "azure")
		os.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
		os.Setenv("ASSISTANTS_ENABLED", "true")

		defer func() {
			// Restore original env vars
			if origAIPlugin != "" {
				os.Setenv("AI_PLUGIN", origAIPlugin)
			} else {
				os.Unsetenv("AI_PLUGIN")
			}
			if origAzureEndpoint != "" {
				os.Setenv("AZURE_OPENAI_ENDPOINT", origAzureEndpoint)
			} else {
				os.Unsetenv("AZURE_OPENAI_ENDPOINT")
			}
			if origAssistants != "" {
				os.Setenv("ASSISTANTS_ENABLED", origAssistants)
			} else {
				os.Unsetenv("ASSISTANTS_ENABLED")
			}
		}()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "azure", cfg.AI.Plugin)
		assert.Equal(t, "https://example.openai.azure.com", cfg.AI.Azure.Endpoint)
		assert.Equal(t, "2024-05-01-preview", cfg.AI.Azure.APIVersion)
		assert.True(t, cfg.Assistants.Enabled)
	})
}
