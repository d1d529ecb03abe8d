package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/drpaneas/askgate/internal/textutil"
)

type ollamaProvider struct {
	host   string
	client *http.Client
}

func newOllama(cfg ProviderConfig) *ollamaProvider {
	return &ollamaProvider{
		host: cfg.OllamaHost,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (p *ollamaProvider) name() ProviderName { return ProviderOllama }
func (p *ollamaProvider) envKey() string     { return "" }
func (p *ollamaProvider) hasKey() bool       { return true }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount *int          `json:"prompt_eval_count"`
	EvalCount       *int          `json:"eval_count"`
}

func (p *ollamaProvider) generate(ctx context.Context, model string, messages []Message) (*Completion, error) {
	if p.host == "" {
		return nil, &ProviderError{Backend: ProviderOllama, Err: errors.New("OLLAMA_HOST is not set")}
	}

	payload := ollamaRequest{Model: model, Stream: false}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, ollamaMessage{Role: m.Role, Content: m.Content})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Backend: ProviderOllama, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Backend: ProviderOllama, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Backend: ProviderOllama, Err: fmt.Errorf("request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, newProviderError(ProviderOllama, resp.StatusCode,
			fmt.Errorf("returned status %d: %s", resp.StatusCode, textutil.Preview(string(respBody), 512)))
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ProviderError{Backend: ProviderOllama, Err: fmt.Errorf("decoding response: %w", err)}
	}

	usage := Usage{
		PromptTokens:     result.PromptEvalCount,
		CompletionTokens: result.EvalCount,
	}
	if usage.PromptTokens != nil && usage.CompletionTokens != nil {
		usage.TotalTokens = intPtr(*usage.PromptTokens + *usage.CompletionTokens)
	}
	return &Completion{Text: result.Message.Content, Usage: usage}, nil
}
