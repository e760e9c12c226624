package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// AssistantClient forwards requests to the upstream AI service. Bodies and
// the caller's bearer credential pass through unchanged; the response is
// returned as-is for the handler to relay.
type AssistantClient interface {
	Forward(ctx context.Context, method, path, rawQuery string, header http.Header, body io.Reader) (*http.Response, error)
}

type assistantClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// Headers copied verbatim onto the forwarded request.
var forwardedHeaders = []string{"Authorization", "Content-Type", "Accept"}

func NewAssistantClient(baseURL string, logger zerolog.Logger) AssistantClient {
	return &assistantClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// No timeout: analysis responses can take minutes. Cancellation
			// comes from the request context instead.
		},
		logger: logger.With().Str("service", "AssistantClient").Logger(),
	}
}

func (c *assistantClient) Forward(ctx context.Context, method, path, rawQuery string, header http.Header, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating upstream request: %w", err)
	}
	for _, h := range forwardedHeaders {
		if v := header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Upstream assistant request failed")
		return nil, fmt.Errorf("reaching assistant service: %w", err)
	}
	return resp, nil
}
