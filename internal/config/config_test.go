package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Valid(t *testing.T) {
	ResetConfigForTest()
	t.Setenv("GROQ_API_KEY", "test-key")
	tmp := "test_config.json"
	raw := []byte(`{
		"server": {
			"host": "localhost",
			"port": 9090
		},
		"llm": {
			"summary_model": {"name": "llama-3.1-8b-instant", "temperature": 1},
			"chat_model": {"name": "llama-3.1-70b-versatile", "temperature": 1, "max_tokens": 7950}
		},
		"fetch": {
			"timeout_seconds": 5
		}
	}`)
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	cfg, err := LoadConfig(tmp)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 9090 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.LLM.ChatModel.MaxTokens != 7950 {
		t.Errorf("chat model config not loaded: %+v", cfg.LLM.ChatModel)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("API key not read from environment")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfigForTest()
	t.Setenv("GROQ_API_KEY", "test-key")
	tmp := "test_defaults_config.json"
	if err := os.WriteFile(tmp, []byte(`{}`), 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	cfg, err := LoadConfig(tmp)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.LLM.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("expected Groq base URL default, got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.MaxRetries != 2 {
		t.Errorf("expected default max retries 2, got %d", cfg.LLM.MaxRetries)
	}
	if cfg.Fetch.MaxSizeMB != 10 {
		t.Errorf("expected default fetch size cap, got %d", cfg.Fetch.MaxSizeMB)
	}
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	ResetConfigForTest()
	t.Setenv("GROQ_API_KEY", "")
	tmp := "test_nokey_config.json"
	if err := os.WriteFile(tmp, []byte(`{}`), 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	_, err := LoadConfig(tmp)
	if err == nil {
		t.Errorf("expected error when GROQ_API_KEY is absent")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfigForTest()
	_, err := LoadConfig("no_such_config.json")
	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	ResetConfigForTest()
	tmp := "test_invalid_config.json"
	if err := os.WriteFile(tmp, []byte(`{this is not json}`), 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	_, err := LoadConfig(tmp)
	if err == nil {
		t.Errorf("expected error for malformed JSON")
	}
}
