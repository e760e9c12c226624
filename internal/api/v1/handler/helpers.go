package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"app/internal/middleware"
)

// ErrorResponse is the structured error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// userIDFromRequest pulls the authenticated user id the auth middleware put
// on the context. An empty result means the route was mounted without auth.
func userIDFromRequest(r *http.Request) string {
	id, _ := r.Context().Value(middleware.UserContextKey).(string)
	return id
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the socket
// address without its port.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
