// Package media is the request/response side of the video session: uploading
// a video and searching its transcript. The streaming chat channel lives in
// the dialogue core, not here.
package media

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the upload and search endpoints of one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client, e.g. to set timeouts.
// The provided client's transport is still wrapped for tracing.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a media client for the server at baseURL
// (e.g. "http://localhost:8000").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
			return operationName + " " + request.URL.Path
		}),
	)

	return c
}

// errorBody is the structured error payload both endpoints return on
// failure. The message is surfaced verbatim when present.
type errorBody struct {
	Error string `json:"error"`
}

// requestFailure extracts the server's error message from a failed response
// body, falling back to the per-operation generic message.
func requestFailure(body []byte, fallback string) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fallback
}
