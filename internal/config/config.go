package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
)

// DefaultModel is used for /ask requests that do not name a model.
const DefaultModel = "claude-sonnet-4-5"

// ServiceName is reported by the health endpoint.
const ServiceName = "LiteLLM API"

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "5000"
	defaultOllamaHost = "http://localhost:11434"
	defaultMaxTokens  = 4096
)

// Config holds all runtime configuration for the gateway. It is built once
// at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	Addr            string
	MetricsAddr     string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OllamaHost      string
	DefaultModel    string
	MaxTokens       int
	Verbose         bool

	maxTokensErr error
}

// LoadFromEnv populates fields from the process environment. Fields already
// set (for example from flags) are left alone.
func (c *Config) LoadFromEnv() {
	c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if c.Addr == "" {
		host := envOr("HOST", defaultHost)
		port := envOr("PORT", defaultPort)
		c.Addr = net.JoinHostPort(host, port)
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = os.Getenv("METRICS_ADDR")
	}
	if c.OllamaHost == "" {
		c.OllamaHost = envOr("OLLAMA_HOST", defaultOllamaHost)
	}
	c.OllamaHost = strings.TrimRight(c.OllamaHost, "/")
	if c.DefaultModel == "" {
		c.DefaultModel = envOr("DEFAULT_MODEL", DefaultModel)
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
		if v := os.Getenv("MAX_TOKENS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.maxTokensErr = fmt.Errorf("invalid MAX_TOKENS %q: %w", v, err)
			} else {
				c.MaxTokens = n
			}
		}
	}
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		c.Verbose = true
	}
}

// Validate checks that all required fields are set and consistent. Missing
// API keys are not an error; see Warnings.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Addr, err)
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return fmt.Errorf("invalid metrics address %q: %w", c.MetricsAddr, err)
		}
		if c.MetricsAddr == c.Addr {
			return fmt.Errorf("metrics address must differ from listen address %q", c.Addr)
		}
	}
	if strings.TrimSpace(c.DefaultModel) == "" {
		return fmt.Errorf("default model must not be blank")
	}
	if c.maxTokensErr != nil {
		return c.maxTokensErr
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("MAX_TOKENS must be at least 1")
	}
	return nil
}

// HasProviderKey reports whether at least one hosted-provider key is set.
func (c *Config) HasProviderKey() bool {
	return c.AnthropicAPIKey != "" || c.OpenAIAPIKey != ""
}

// Warn logs configuration problems that do not prevent startup.
func (c *Config) Warn() {
	if !c.HasProviderKey() {
		slog.Warn("neither ANTHROPIC_API_KEY nor OPENAI_API_KEY is set; hosted models will fail with an API key error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
