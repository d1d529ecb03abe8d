package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicProvider struct {
	client    anthropic.Client
	apiKey    string
	maxTokens int64
}

func newAnthropic(cfg ProviderConfig) *anthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}
	return &anthropicProvider{
		client:    anthropic.NewClient(opts...),
		apiKey:    cfg.AnthropicAPIKey,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (p *anthropicProvider) name() ProviderName { return ProviderAnthropic }
func (p *anthropicProvider) envKey() string     { return "ANTHROPIC_API_KEY" }
func (p *anthropicProvider) hasKey() bool       { return p.apiKey != "" }

func (p *anthropicProvider) generate(ctx context.Context, model string, messages []Message) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: p.maxTokens,
	}
	for _, m := range messages {
		switch m.Role {
		case "system":
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case "assistant":
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		code := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			code = apiErr.StatusCode
		}
		return nil, newProviderError(ProviderAnthropic, code, fmt.Errorf("completion: %w", err))
	}

	in := int(msg.Usage.InputTokens)
	out := int(msg.Usage.OutputTokens)
	usage := Usage{
		PromptTokens:     intPtr(in),
		CompletionTokens: intPtr(out),
		TotalTokens:      intPtr(in + out),
	}
	// The first text block is the answer; tool-use blocks are never requested.
	for _, block := range msg.Content {
		if block.Type == "text" {
			return &Completion{Text: block.Text, Usage: usage}, nil
		}
	}
	return nil, &ProviderError{Backend: ProviderAnthropic, Err: errors.New("returned no text content")}
}
