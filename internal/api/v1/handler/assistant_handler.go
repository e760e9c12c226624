package handler

import (
	"io"
	"net/http"
	"strings"

	"app/internal/service"

	"github.com/rs/zerolog"
)

// AssistantHandler relays requests to the upstream AI service. Bodies,
// content types and status codes pass through unchanged in both directions.
type AssistantHandler struct {
	client service.AssistantClient
	logger zerolog.Logger
}

func NewAssistantHandler(client service.AssistantClient, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{client: client, logger: logger}
}

// RegisterRoutes mounts v1 assistant routes
func (h *AssistantHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/assistant/", authMw(http.HandlerFunc(h.handleAssistant)))
}

// handleAssistant godoc
// @Summary Forward an assistant request to the AI service
// @Description Relays /assistant/analysis (multipart upload) and /assistant/analysis/{token} (result poll) verbatim, preserving status and content type.
// @Tags assistant
// @Success 200 {string} string "upstream response"
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Failure 502 {object} handler.ErrorResponse "assistant service unreachable"
// @Router /assistant/analysis [post]
func (h *AssistantHandler) handleAssistant(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/assistant/analysis" && r.Method == http.MethodPost:
	case strings.HasPrefix(path, "/assistant/analysis/") && r.Method == http.MethodGet:
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	resp, err := h.client.Forward(r.Context(), r.Method, path, r.URL.RawQuery, r.Header, r.Body)
	if err != nil {
		writeError(w, http.StatusBadGateway, "assistant service unreachable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Failed to relay assistant response")
	}
}
