package gateway

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		text         string
		wantStatus   int
		wantCategory string
	}{
		{"Invalid API key provided", http.StatusUnauthorized, "API key error"},
		{"missing api_key", http.StatusUnauthorized, "API key error"},
		{"AuthenticationError: bad token", http.StatusUnauthorized, "API key error"},
		{"Rate Limit reached", http.StatusTooManyRequests, "rate limit exceeded"},
		{"insufficient QUOTA", http.StatusTooManyRequests, "rate limit exceeded"},
		{"Model xyz NOT FOUND", http.StatusBadRequest, "model not found"},
		{"not found", http.StatusInternalServerError, "internal server error"},
		{"model overloaded", http.StatusInternalServerError, "internal server error"},
		{"api_key quota model not found", http.StatusUnauthorized, "API key error"},
		{"quota: model not found", http.StatusTooManyRequests, "rate limit exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := classifyProviderError(errors.New(tt.text), "m")
			if got.status != tt.wantStatus || got.body.Error != tt.wantCategory {
				t.Errorf("classify(%q) = %d %q, want %d %q",
					tt.text, got.status, got.body.Error, tt.wantStatus, tt.wantCategory)
			}
			if tt.wantStatus == http.StatusInternalServerError && got.body.Details != tt.text {
				t.Errorf("Details = %q, want raw text %q", got.body.Details, tt.text)
			}
			if tt.wantStatus != http.StatusInternalServerError && got.body.Details != "" {
				t.Errorf("Details = %q, want empty", got.body.Details)
			}
		})
	}
}
