// Package zhipu provides an aiclient.Client implementation backed by the
// Zhipu AI open platform chat-completions API.
package zhipu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"navhub/pkg/aiclient"
	"navhub/pkg/serrors"
)

const (
	defaultBaseURL     = "https://open.bigmodel.cn/api/paas/v4"
	defaultModel       = "glm-4-flash"
	defaultTemperature = 0.7
)

// Client talks to the Zhipu chat-completions REST API and fulfills the
// aiclient.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	apiKey     string       // apiKey is the bearer token for the API
	baseURL    string
	model      string
}

// New constructs a Client that uses the provided http.Client and API key.
// The zero values of Option fields fall back to the public endpoint and the
// glm-4-flash model.
func New(httpClient *http.Client, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []aiclient.Message `json:"messages"`
	Temperature float64            `json:"temperature"`
	Stream      bool               `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Chat sends the conversation and returns the complete assistant reply.
func (c *Client) Chat(ctx context.Context, messages []aiclient.Message) (string, error) {
	resp, err := c.send(ctx, messages, false)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(b, &cr); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", serrors.With(serrors.ErrUnavailable, "model returned no choices")
	}

	return cr.Choices[0].Message.Content, nil
}

// ChatStream sends the conversation and returns the assistant reply as an
// SSE stream of chunks.
func (c *Client) ChatStream(ctx context.Context, messages []aiclient.Message) (aiclient.Stream, error) {
	resp, err := c.send(ctx, messages, true)
	if err != nil {
		return nil, err
	}

	return aiclient.NewSSEStream(resp, decodeStreamChunk), nil
}

// send posts the chat request and returns the raw response. Non-2xx statuses
// are drained and converted into errors.
func (c *Client) send(ctx context.Context, messages []aiclient.Message, stream bool) (*http.Response, error) {
	bodyBytes, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() {
			_ = resp.Body.Close()
		}()
		b, _ := io.ReadAll(resp.Body)

		return nil, serrors.With(serrors.ErrUnavailable,
			"chat completion failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return resp, nil
}

func decodeStreamChunk(data []byte) (aiclient.Chunk, error) {
	var sr streamResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return aiclient.Chunk{}, fmt.Errorf("could not decode chunk: %w", err)
	}
	if len(sr.Choices) == 0 {
		return aiclient.Chunk{}, nil
	}

	return aiclient.Chunk{Content: sr.Choices[0].Delta.Content}, nil
}

// Ensure Client conforms to the aiclient.Client interface at compile time.
var _ aiclient.Client = (*Client)(nil)
