package llm

import (
	"context"
	"time"
)

// ProviderName identifies a supported LLM backend.
type ProviderName string

const (
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
	ProviderOllama    ProviderName = "ollama"
)

// RoleUser is the role of caller-supplied messages.
const RoleUser = "user"

// defaultTimeout bounds a single backend call.
const defaultTimeout = 5 * time.Minute

// Message is a single role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Usage holds token counters reported by a backend. A nil counter means the
// backend did not report it.
type Usage struct {
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
}

// Completion is the generated answer for a single request.
type Completion struct {
	Text  string
	Usage Usage
}

// Provider abstracts an LLM completion backend.
type Provider interface {
	Generate(ctx context.Context, model string, messages []Message) (*Completion, error)
}

// ProviderConfig holds the configuration needed to construct the backends.
type ProviderConfig struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OllamaHost      string
	MaxTokens       int

	// Base URL overrides; empty means the vendor default.
	AnthropicBaseURL string
	OpenAIBaseURL    string

	Timeout time.Duration
}

// NewProvider creates a Router over every backend in cfg.
func NewProvider(cfg ProviderConfig) *Router {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &Router{
		backends: map[ProviderName]backend{
			ProviderAnthropic: newAnthropic(cfg),
			ProviderOpenAI:    newOpenAI(cfg),
			ProviderOllama:    newOllama(cfg),
		},
	}
}

func intPtr(n int) *int { return &n }
