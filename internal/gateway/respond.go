package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// apiError pairs an ErrorResponse with its HTTP status.
type apiError struct {
	status int
	body   ErrorResponse
}

var (
	errEmptyBody = &apiError{http.StatusBadRequest, ErrorResponse{
		Error:   "empty body",
		Message: `The request body must be a JSON object containing a "prompt" field.`,
	}}
	errMissingPrompt = &apiError{http.StatusBadRequest, ErrorResponse{
		Error:   "missing prompt",
		Message: `The "prompt" field is required in the request body.`,
	}}
	errEmptyPrompt = &apiError{http.StatusBadRequest, ErrorResponse{
		Error:   "empty prompt",
		Message: `The "prompt" field must not be empty.`,
	}}
	errInvalidPrompt = &apiError{http.StatusBadRequest, ErrorResponse{
		Error:   "invalid prompt",
		Message: `The "prompt" field must be a string.`,
	}}
	errInvalidModel = &apiError{http.StatusBadRequest, ErrorResponse{
		Error:   "invalid model",
		Message: `The "model" field must be a string.`,
	}}
	errNotFound = &apiError{http.StatusNotFound, ErrorResponse{
		Error:   "endpoint not found",
		Message: "The requested endpoint does not exist. Use /ask or /health.",
	}}
	errMethodNotAllowed = &apiError{http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "method not allowed",
		Message: "The HTTP method is not allowed for this endpoint.",
	}}
	errInternal = &apiError{http.StatusInternalServerError, ErrorResponse{
		Error:   "internal server error",
		Message: "An unexpected error occurred while handling the request.",
	}}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, e *apiError) {
	writeJSON(w, e.status, e.body)
}
