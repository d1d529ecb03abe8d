package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type openaiProvider struct {
	client *openai.Client
	apiKey string
}

func newOpenAI(cfg ProviderConfig) *openaiProvider {
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &openaiProvider{
		client: openai.NewClientWithConfig(oc),
		apiKey: cfg.OpenAIAPIKey,
	}
}

func (p *openaiProvider) name() ProviderName { return ProviderOpenAI }
func (p *openaiProvider) envKey() string     { return "OPENAI_API_KEY" }
func (p *openaiProvider) hasKey() bool       { return p.apiKey != "" }

func (p *openaiProvider) generate(ctx context.Context, model string, messages []Message) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, newProviderError(ProviderOpenAI, openaiStatus(err), fmt.Errorf("completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Backend: ProviderOpenAI, Err: errors.New("returned no choices")}
	}
	return &Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     intPtr(resp.Usage.PromptTokens),
			CompletionTokens: intPtr(resp.Usage.CompletionTokens),
			TotalTokens:      intPtr(resp.Usage.TotalTokens),
		},
	}, nil
}

func openaiStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
