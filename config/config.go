package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI         AIConfig         `yaml:"ai"`
	DB         DBConfig         `yaml:"db"`
	Cache      CacheConfig      `yaml:"cache"`
	Assistants AssistantsConfig `yaml:"assistants"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

type AIConfig struct {
	Plugin string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Gemini GeminiConfig `yaml:"gemini"`
	Ollama OllamaConfig `yaml:"ollama"`
	Azure  AzureConfig  `yaml:"azure"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// AzureConfig configures the Azure OpenAI plugin and the hosted
// assistants API, which share the same resource endpoint and key.
type AzureConfig struct {
	Endpoint   string `yaml:"endpoint" env:"AZURE_OPENAI_ENDPOINT"`
	APIKey     string `yaml:"api_key" env:"AZURE_OPENAI_API_KEY"`
	APIVersion string `yaml:"api_version" env:"AZURE_OPENAI_API_VERSION" env-default:"2024-05-01-preview"`
	Deployment string `yaml:"deployment" env:"AZURE_OPENAI_DEPLOYMENT" env-default:"gpt-35-turbo"`
}

// CacheConfig controls the chat response cache. A zero TTL disables
// caching entirely.
type CacheConfig struct {
	TTLSecs int `yaml:"ttl_secs" env:"CHAT_CACHE_TTL_SECS" env-default:"0"`
}

type DBConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"mathdesk.db"`
}

// AssistantsConfig controls the hosted-assistants integration: when
// disabled, chat requests are answered by the local model instead of a
// deployed assistant.
type AssistantsConfig struct {
	Enabled     bool `yaml:"enabled" env:"ASSISTANTS_ENABLED" env-default:"false"`
	PollMillis  int  `yaml:"poll_millis" env:"ASSISTANTS_POLL_MILLIS" env-default:"500"`
	TimeoutSecs int  `yaml:"timeout_secs" env:"ASSISTANTS_TIMEOUT_SECS" env-default:"120"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
