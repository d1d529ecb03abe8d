package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/drpaneas/askgate/internal/llm"
	"github.com/drpaneas/askgate/internal/textutil"
)

const maxBodyBytes = 1 << 20

// AskRequest is a validated /ask request.
type AskRequest struct {
	Prompt string
	Model  string
}

// Usage mirrors llm.Usage on the wire; unreported counters encode as null.
type Usage struct {
	PromptTokens     *int `json:"promptTokens"`
	CompletionTokens *int `json:"completionTokens"`
	TotalTokens      *int `json:"totalTokens"`
}

// AskResponse is the body of a successful /ask call.
type AskResponse struct {
	Success bool   `json:"success"`
	Model   string `json:"model"`
	Answer  string `json:"answer"`
	Usage   Usage  `json:"usage"`
}

// parseAskRequest validates a raw /ask body. A missing, blank or null model
// selects defaultModel. For duplicate keys the last occurrence wins.
func parseAskRequest(body []byte, defaultModel string) (*AskRequest, *apiError) {
	if !gjson.ValidBytes(body) {
		return nil, errEmptyBody
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errEmptyBody
	}

	var (
		prompt, model gjson.Result
		keys          int
	)
	root.ForEach(func(key, value gjson.Result) bool {
		keys++
		switch key.String() {
		case "prompt":
			prompt = value
		case "model":
			model = value
		}
		return true
	})
	if keys == 0 {
		return nil, errEmptyBody
	}
	if !prompt.Exists() {
		return nil, errMissingPrompt
	}

	req := &AskRequest{Model: defaultModel}
	switch prompt.Type {
	case gjson.Null:
		return nil, errEmptyPrompt
	case gjson.String:
		req.Prompt = prompt.String()
	default:
		return nil, errInvalidPrompt
	}

	switch model.Type {
	case gjson.Null:
	case gjson.String:
		if m := strings.TrimSpace(model.String()); m != "" {
			req.Model = m
		}
	default:
		return nil, errInvalidModel
	}

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errEmptyPrompt
	}
	return req, nil
}

// providerLabel maps a requested model to a bounded metrics label.
func providerLabel(model string) string {
	vendor, _, ok := llm.Resolve(model)
	if !ok {
		return "unknown"
	}
	return string(vendor)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Warn("reading ask body", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, errEmptyBody)
		return
	}
	req, apiErr := parseAskRequest(body, s.defaultModel)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	log := slog.With("request_id", RequestID(r.Context()), "model", req.Model)
	log.Info("ask received", "prompt_length", utf8.RuneCountInString(req.Prompt))
	log.Debug("ask prompt", "preview", textutil.Preview(req.Prompt, 120))

	vendor := providerLabel(req.Model)
	done := s.metrics.ProviderStarted(vendor)
	completion, err := s.provider.Generate(r.Context(), req.Model, []llm.Message{
		{Role: llm.RoleUser, Content: req.Prompt},
	})
	if err != nil {
		done("error")
		log.Error("ask failed", "error", err)
		writeError(w, classifyProviderError(err, req.Model))
		return
	}
	done("success")

	u := completion.Usage
	s.metrics.ObserveTokens(vendor, u.PromptTokens, u.CompletionTokens)
	log.Info("ask succeeded", "answer_length", utf8.RuneCountInString(completion.Text))

	writeJSON(w, http.StatusOK, AskResponse{
		Success: true,
		Model:   req.Model,
		Answer:  completion.Text,
		Usage: Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		},
	})
}
