package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config with both keys",
			cfg: Config{
				Addr:            "0.0.0.0:5000",
				AnthropicAPIKey: "sk-ant-fake",
				OpenAIAPIKey:    "sk-fake",
				DefaultModel:    DefaultModel,
				MaxTokens:       4096,
			},
		},
		{
			name: "valid config without keys",
			cfg: Config{
				Addr:         ":5000",
				DefaultModel: DefaultModel,
				MaxTokens:    1,
			},
		},
		{
			name: "valid config with metrics listener",
			cfg: Config{
				Addr:         ":5000",
				MetricsAddr:  ":9090",
				DefaultModel: DefaultModel,
				MaxTokens:    4096,
			},
		},
		{
			name: "missing addr",
			cfg: Config{
				DefaultModel: DefaultModel,
				MaxTokens:    4096,
			},
			wantErr: true,
		},
		{
			name: "addr without port",
			cfg: Config{
				Addr:         "localhost",
				DefaultModel: DefaultModel,
				MaxTokens:    4096,
			},
			wantErr: true,
		},
		{
			name: "metrics addr equals listen addr",
			cfg: Config{
				Addr:         ":5000",
				MetricsAddr:  ":5000",
				DefaultModel: DefaultModel,
				MaxTokens:    4096,
			},
			wantErr: true,
		},
		{
			name: "blank default model",
			cfg: Config{
				Addr:         ":5000",
				DefaultModel: "  ",
				MaxTokens:    4096,
			},
			wantErr: true,
		},
		{
			name: "max tokens zero",
			cfg: Config{
				Addr:         ":5000",
				DefaultModel: DefaultModel,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "HOST", "PORT", "METRICS_ADDR",
			"OLLAMA_HOST", "DEFAULT_MODEL", "MAX_TOKENS", "LOG_LEVEL"} {
			t.Setenv(k, "")
		}
		var cfg Config
		cfg.LoadFromEnv()

		if cfg.Addr != "0.0.0.0:5000" {
			t.Errorf("Addr = %q, want %q", cfg.Addr, "0.0.0.0:5000")
		}
		if cfg.OllamaHost != "http://localhost:11434" {
			t.Errorf("OllamaHost = %q", cfg.OllamaHost)
		}
		if cfg.DefaultModel != DefaultModel {
			t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, DefaultModel)
		}
		if cfg.MaxTokens != 4096 {
			t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
		}
		if cfg.Verbose {
			t.Error("Verbose should default to false")
		}
		if cfg.HasProviderKey() {
			t.Error("HasProviderKey() = true with no keys set")
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-fake")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("PORT", "8080")
		t.Setenv("METRICS_ADDR", ":9090")
		t.Setenv("OLLAMA_HOST", "http://ollama:11434/")
		t.Setenv("DEFAULT_MODEL", "gpt-4o")
		t.Setenv("MAX_TOKENS", "512")
		t.Setenv("LOG_LEVEL", "DEBUG")

		var cfg Config
		cfg.LoadFromEnv()

		if cfg.Addr != "127.0.0.1:8080" {
			t.Errorf("Addr = %q", cfg.Addr)
		}
		if cfg.MetricsAddr != ":9090" {
			t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
		}
		if cfg.OllamaHost != "http://ollama:11434" {
			t.Errorf("OllamaHost = %q, want trailing slash trimmed", cfg.OllamaHost)
		}
		if cfg.DefaultModel != "gpt-4o" {
			t.Errorf("DefaultModel = %q", cfg.DefaultModel)
		}
		if cfg.MaxTokens != 512 {
			t.Errorf("MaxTokens = %d", cfg.MaxTokens)
		}
		if !cfg.Verbose {
			t.Error("LOG_LEVEL=debug should enable Verbose")
		}
		if !cfg.HasProviderKey() {
			t.Error("HasProviderKey() = false with ANTHROPIC_API_KEY set")
		}
	})

	t.Run("malformed MAX_TOKENS fails validation", func(t *testing.T) {
		t.Setenv("MAX_TOKENS", "abc")
		var cfg Config
		cfg.LoadFromEnv()
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() should reject MAX_TOKENS=abc")
		}
	})

	t.Run("flags win over environment", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("METRICS_ADDR", ":9090")
		cfg := Config{Addr: ":7000", MetricsAddr: ":7001"}
		cfg.LoadFromEnv()
		if cfg.Addr != ":7000" || cfg.MetricsAddr != ":7001" {
			t.Errorf("flag values overwritten: %q %q", cfg.Addr, cfg.MetricsAddr)
		}
	})
}
