package llm

import (
	"testing"

	"github.com/ppiankov/lexis/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "disabled", config: Config{}, wantNil: true},
		{name: "openai", config: Config{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{name: "claude alias", config: Config{Provider: "Claude", APIKey: "k"}, wantName: "anthropic"},
		{name: "ollama", config: Config{Provider: "ollama"}, wantName: "ollama"},
		{name: "openai without key", config: Config{Provider: "openai"}, wantErr: true},
		{name: "unknown", config: Config{Provider: "bard"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if provider != nil {
					t.Errorf("expected nil provider, got %s", provider.Name())
				}
				return
			}
			if provider.Name() != tt.wantName {
				t.Errorf("expected %s, got %s", tt.wantName, provider.Name())
			}
		})
	}
}

func TestConfigFromModel_EnvFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.HTTP.HTTPSProxy = "http://proxy:3128"

	c := ConfigFromModel(cfg)
	if c.APIKey != "env-key" {
		t.Errorf("expected key from environment, got %q", c.APIKey)
	}
	if c.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("expected proxy passthrough, got %q", c.HTTPSProxy)
	}

	cfg.LLM.APIKey = "explicit"
	if c := ConfigFromModel(cfg); c.APIKey != "explicit" {
		t.Errorf("explicit key should win, got %q", c.APIKey)
	}

	cfg.LLM.Provider = "ollama"
	if c := ConfigFromModel(cfg); c.BaseURL != "http://ollama:11434" {
		t.Errorf("expected base URL from environment, got %q", c.BaseURL)
	}
}
