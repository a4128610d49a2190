package handler

import "net/http"

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPISpec handles GET /openapi.yaml, serving the embedded API spec.
// Serving it from the binary keeps the spec and the running code in sync.
func (s *Server) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if len(s.spec) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.spec)
}
