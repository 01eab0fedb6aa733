package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// ModelConfig holds the generation parameters for one chat-completion model.
type ModelConfig struct {
	Name        string  `json:"name"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type Config struct {
	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	LLM struct {
		BaseURL        string      `json:"base_url"`
		SummaryModel   ModelConfig `json:"summary_model"`
		ChatModel      ModelConfig `json:"chat_model"`
		MaxRetries     int         `json:"max_retries"`
		TimeoutSeconds int         `json:"timeout_seconds"`
	} `json:"llm"`
	Fetch struct {
		TimeoutSeconds int    `json:"timeout_seconds"`
		MaxSizeMB      int    `json:"max_size_mb"`
		UserAgent      string `json:"user_agent"`
	} `json:"fetch"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Session struct {
		TTLMinutes int `json:"ttl_minutes"`
	} `json:"session"`

	// APIKey comes from the environment, never from the config file.
	APIKey string `json:"-"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk and the API credential from the
// environment (singleton). A missing GROQ_API_KEY is a hard error: the
// server must not start without it.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		applyDefaults(&c)

		// .env is optional; the environment itself may carry the key
		_ = godotenv.Load()
		c.APIKey = os.Getenv("GROQ_API_KEY")
		if c.APIKey == "" {
			cfgErr = errors.New("GROQ_API_KEY is not set in the environment variables")
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.LLM.SummaryModel.Name == "" {
		c.LLM.SummaryModel.Name = "llama-3.1-8b-instant"
	}
	if c.LLM.ChatModel.Name == "" {
		c.LLM.ChatModel.Name = "llama-3.1-70b-versatile"
	}
	if c.LLM.ChatModel.MaxTokens == 0 {
		c.LLM.ChatModel.MaxTokens = 8000
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = 2
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 15
	}
	if c.Fetch.MaxSizeMB == 0 {
		c.Fetch.MaxSizeMB = 10
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "SiteChat/1.0"
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 60
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
