// Package api is the Ollama inference client. Chat goes through the
// OpenAI-compatible /v1 endpoint via the official SDK; model listing and
// server probes use the native API.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// DefaultTimeout bounds a single completion request. Local models can be
// slow to load on first use, so this is generous.
const DefaultTimeout = 5 * time.Minute

// Client talks to an Ollama server
type Client struct {
	oai        openai.Client
	httpClient *http.Client
	baseURL    string
	model      string
	timeout    time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the default model for the client
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at a non-default server.
// The URL should include the /v1 suffix.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient substitutes the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Ollama client
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		baseURL: models.DefaultBaseURL,
		model:   models.ModelDeepseekR1.Name,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	// Ollama ignores the key but the SDK requires one
	client.oai = openai.NewClient(
		option.WithBaseURL(client.baseURL),
		option.WithAPIKey("ollama"),
		option.WithHTTPClient(client.httpClient),
		option.WithMaxRetries(1),
	)

	return client
}

// Model returns the default model name for this client
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the configured OpenAI-compatible endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// nativeURL maps the /v1 endpoint back to the native API root.
func (c *Client) nativeURL(endpoint string) string {
	host := strings.TrimSuffix(c.baseURL, "/v1")
	return strings.TrimRight(host, "/") + endpoint
}
