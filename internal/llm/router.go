package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type backend interface {
	name() ProviderName
	// envKey is the environment variable holding the backend's API key,
	// or "" when the backend needs none.
	envKey() string
	hasKey() bool
	generate(ctx context.Context, model string, messages []Message) (*Completion, error)
}

// Router dispatches each request to the backend that serves the model's
// vendor. It is safe for concurrent use.
type Router struct {
	backends map[ProviderName]backend
}

// Generate implements Provider.
func (r *Router) Generate(ctx context.Context, model string, messages []Message) (*Completion, error) {
	vendor, name, ok := Resolve(model)
	if !ok {
		return nil, &ProviderError{
			Kind: KindModelNotFound,
			Err:  fmt.Errorf("no provider serves model %q", model),
		}
	}
	b, ok := r.backends[vendor]
	if !ok {
		return nil, &ProviderError{
			Backend: vendor,
			Kind:    KindModelNotFound,
			Err:     fmt.Errorf("provider %s is not configured for model %q", vendor, model),
		}
	}
	if !b.hasKey() {
		return nil, &ProviderError{
			Backend: vendor,
			Kind:    KindAuth,
			Err:     fmt.Errorf("missing API key, set %s", b.envKey()),
		}
	}
	slog.Debug("dispatching to provider", "provider", b.name(), "model", name)
	return b.generate(ctx, name, messages)
}

// Resolve returns the vendor serving model and the model name to send to
// it. An explicit "vendor/" prefix wins and is stripped; otherwise the
// vendor is inferred from well-known model name prefixes.
func Resolve(model string) (ProviderName, string, bool) {
	if vendor, rest, found := strings.Cut(model, "/"); found {
		switch p := ProviderName(strings.ToLower(vendor)); p {
		case ProviderAnthropic, ProviderOpenAI, ProviderOllama:
			if rest == "" {
				return "", "", false
			}
			return p, rest, true
		}
	}

	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "claude"):
		return ProviderAnthropic, model, true
	case hasAnyPrefix(lower, "gpt-", "chatgpt-", "o1", "o3", "o4"):
		return ProviderOpenAI, model, true
	default:
		return "", "", false
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
