// Package completion is the chat-completion client behind plan
// generation.
//
// The client sends a two-message (system, user) request to an
// OpenAI-compatible chat-completions endpoint and classifies every
// failure into the closed Kind taxonomy. It performs no retries: a 429
// surfaces as KindRateLimit and any backoff policy belongs to the
// caller. The only client-side pacing is an optional request throttle.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// defaultEndpoint is used when the configured endpoint is empty.
	defaultEndpoint = "https://api.openai.com"

	completionsPath = "/v1/chat/completions"

	defaultTimeout = 60 * time.Second
)

// Config holds the per-request provider settings. UpdateConfig swaps the
// whole value; a request snapshots it once at entry, so an in-flight
// call is never affected by a concurrent update.
type Config struct {
	// APIKey is the bearer credential.
	APIKey string

	// Endpoint is the base URL. Empty selects the provider default.
	Endpoint string

	// Model is the model identifier.
	Model string

	// MaxTokens is the output token ceiling.
	MaxTokens int
}

// Client is a chat-completion client with provider error classification.
type Client struct {
	mu  sync.RWMutex
	cfg Config

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit installs a client-side request throttle of r requests
// per second with the given burst. Zero r disables throttling.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		if r > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(r), burst)
		}
	}
}

// NewClient creates a completion client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateConfig replaces the provider configuration. Subsequent Complete
// calls use the new values; in-flight calls keep the snapshot they took.
func (c *Client) UpdateConfig(cfg Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// config returns a snapshot of the current configuration.
func (c *Client) config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// chatRequest is the OpenAI-compatible wire request.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the wire response the client reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// providerError is the provider's error envelope.
type providerError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends a two-message chat completion and returns the reply as
// an untyped JSON tree.
//
// The reply text is strict-JSON parsed. On success the parsed value is
// returned as-is, without validating it against the advisory plan shape.
// If the text is not valid JSON the raw text is returned wrapped as
// {"raw": text}; malformed-but-present output is a valid result, not an
// error.
//
// Every failure is a *Error carrying one Kind from the closed taxonomy.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (any, error) {
	cfg := c.config()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "request throttle wait failed", Err: err}
		}
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	payload := chatRequest{
		Model: cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: cfg.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "failed to marshal request", Err: err}
	}

	url := strings.TrimSuffix(endpoint, "/") + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "failed to create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{
			Kind:    KindNetwork,
			Message: "completion request failed; check connectivity and endpoint",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to read response body", Err: err}
	}

	c.logger.Debug("completion response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, respBody)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "failed to parse provider response", Err: err}
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, &Error{Kind: KindUnknown, Message: "no content received from provider"}
	}

	text := chat.Choices[0].Message.Content

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		// Malformed output is still output. Hand it back raw.
		return map[string]any{"raw": text}, nil
	}
	return parsed, nil
}

// classifyStatus maps a non-200 provider response to a classified error.
func classifyStatus(status int, body []byte) *Error {
	message, code := providerMessage(body)

	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "invalid credential; check provider configuration"
		}
		return &Error{Kind: KindAuthentication, Message: message, Code: code}
	case http.StatusTooManyRequests:
		if message == "" {
			message = "provider rate limit exceeded; back off and retry later"
		}
		return &Error{Kind: KindRateLimit, Message: message, Code: code}
	case http.StatusBadRequest:
		if message == "" {
			message = "provider rejected the request payload"
		}
		return &Error{Kind: KindBadRequest, Message: message, Code: code}
	default:
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		return &Error{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("provider returned status %d: %s", status, message),
			Code:    code,
		}
	}
}

// providerMessage extracts the provider's error message and code, if the
// body carries the standard error envelope.
func providerMessage(body []byte) (message, code string) {
	var pe providerError
	if err := json.Unmarshal(body, &pe); err != nil {
		return "", ""
	}
	code = pe.Error.Code
	if code == "" {
		code = pe.Error.Type
	}
	return pe.Error.Message, code
}
