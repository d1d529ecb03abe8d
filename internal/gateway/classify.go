package gateway

import (
	"fmt"
	"net/http"
	"strings"
)

// errorRule maps provider error text to a response. Rules are evaluated in
// order against the lower-cased error message and the first match wins.
type errorRule struct {
	match    func(msg string) bool
	status   int
	category string
	message  func(model string) string
}

func containsAny(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if !strings.Contains(msg, s) {
				return false
			}
		}
		return true
	}
}

func fixed(s string) func(string) string {
	return func(string) string { return s }
}

// Matching on free text is inherently coupled to upstream wording; the llm
// package embeds stable phrases in its errors to keep these rules reliable.
var providerErrorRules = []errorRule{
	{
		match:    containsAny("api_key", "api key", "authentication"),
		status:   http.StatusUnauthorized,
		category: "API key error",
		message:  fixed("Invalid or missing API key. Check the provider API key environment variables."),
	},
	{
		match:    containsAny("rate limit", "quota"),
		status:   http.StatusTooManyRequests,
		category: "rate limit exceeded",
		message:  fixed("The provider usage limit was exceeded. Please try again later."),
	},
	{
		match:    containsAll("model", "not found"),
		status:   http.StatusBadRequest,
		category: "model not found",
		message: func(model string) string {
			return fmt.Sprintf("The requested model (%s) was not found or is not accessible.", model)
		},
	},
}

// classifyProviderError turns a provider failure for model into a response.
// Unmatched errors become a 500 carrying the raw error text in Details.
func classifyProviderError(err error, model string) *apiError {
	text := err.Error()
	lower := strings.ToLower(text)
	for _, r := range providerErrorRules {
		if r.match(lower) {
			return &apiError{r.status, ErrorResponse{Error: r.category, Message: r.message(model)}}
		}
	}
	return &apiError{http.StatusInternalServerError, ErrorResponse{
		Error:   "internal server error",
		Message: "An error occurred while communicating with the LLM service.",
		Details: text,
	}}
}
