package gateway

import "net/http"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: s.serviceName})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, errNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, errMethodNotAllowed)
}
