package llm

import (
	"fmt"
	"net/http"
)

// ErrorKind is the normalized category of a backend failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAuth
	KindRateLimit
	KindModelNotFound
)

// phrase is embedded in ProviderError text so that callers matching on the
// error message see a stable wording regardless of vendor.
func (k ErrorKind) phrase() string {
	switch k {
	case KindAuth:
		return "authentication failed (api_key)"
	case KindRateLimit:
		return "rate limit exceeded"
	case KindModelNotFound:
		return "model not found"
	default:
		return ""
	}
}

// ProviderError is returned by backends when the vendor call fails.
type ProviderError struct {
	Backend    ProviderName
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	prefix := string(e.Backend)
	if prefix == "" {
		prefix = "llm"
	}
	if p := e.Kind.phrase(); p != "" {
		return fmt.Sprintf("%s: %s: %v", prefix, p, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// kindForStatus maps a vendor HTTP status to an ErrorKind.
func kindForStatus(code int) ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusNotFound:
		return KindModelNotFound
	default:
		return KindUnknown
	}
}

func newProviderError(backend ProviderName, code int, err error) *ProviderError {
	return &ProviderError{
		Backend:    backend,
		Kind:       kindForStatus(code),
		StatusCode: code,
		Err:        err,
	}
}
