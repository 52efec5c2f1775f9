package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/llmconnect/provider"
)

// ProviderName is the name the client registers under.
const ProviderName = "ollama"

const (
	generatePath = "/api/generate"
	chatPath     = "/api/chat"

	opGenerate           = "generate"
	opGenerateWithImages = "generate_with_images"
	opChat               = "chat"
	opComplete           = "complete"

	// maxErrorBody caps how much of a non-2xx body is kept in HTTPError.
	maxErrorBody = 1 << 20
)

// Client talks to an Ollama-compatible service.
// The configuration is fixed at construction; a Client is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a client from DefaultConfig and the given options.
func New(opts ...Option) (*Client, error) {
	return NewWithConfig(DefaultConfig(), opts...)
}

// NewWithConfig creates a client from cfg, then applies opts.
// The base URL is normalized and the result validated; an invalid
// configuration returns provider.ErrConfiguration.
func NewWithConfig(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	c.cfg = c.cfg.WithDefaults()
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Generate runs a single-prompt completion and returns the generated text.
// A reply without a "response" field yields "".
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := c.generate(ctx, opGenerate, req)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// GenerateWithImages runs a completion over images. Exactly one of
// req.ImagePaths and req.ImagesBase64 must be set. Files are read before
// any request is sent; an unreadable file fails with *provider.FileError.
func (c *Client) GenerateWithImages(ctx context.Context, req ImageRequest) (string, error) {
	if err := req.generateRequest(nil).validate(); err != nil {
		return "", provider.NewError(ProviderName, opGenerateWithImages, err, false)
	}

	images, err := prepareImages(req.ImagePaths, req.ImagesBase64)
	if err != nil {
		return "", provider.NewError(ProviderName, opGenerateWithImages, fmt.Errorf("prepare images: %w", err), false)
	}

	resp, err := c.generate(ctx, opGenerateWithImages, req.generateRequest(images))
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Chat runs a chat completion and returns the assistant message content.
// A reply without "message.content" yields "".
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := c.chat(ctx, opChat, req)
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

func (c *Client) generate(ctx context.Context, op string, req GenerateRequest) (*generateResponse, error) {
	if err := req.validate(); err != nil {
		return nil, provider.NewError(ProviderName, op, err, false)
	}

	var out generateResponse
	if _, err := c.call(ctx, op, generatePath, req.payload(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) chat(ctx context.Context, op string, req ChatRequest) (*chatResponse, error) {
	if err := req.validate(); err != nil {
		return nil, provider.NewError(ProviderName, op, err, false)
	}

	var out chatResponse
	requestID, err := c.call(ctx, op, chatPath, req.payload(), &out)
	if err != nil {
		return nil, err
	}
	out.requestID = requestID
	return &out, nil
}

// call performs one POST round trip and wraps any failure as *provider.Error.
// It returns the request ID sent in X-Request-ID.
func (c *Client) call(ctx context.Context, op, path string, payload, out any) (string, error) {
	requestID := uuid.NewString()
	logger := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("op", op),
	)

	start := time.Now()
	err := c.postJSON(ctx, requestID, path, payload, out)
	if err != nil {
		logger.Warn("ollama request failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))

		provErr := provider.NewError(ProviderName, op, err, provider.IsRetryable(err))
		provErr.RequestID = requestID
		return requestID, provErr
	}

	logger.Debug("ollama request completed",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)))
	return requestID, nil
}

// postJSON sends payload to path and decodes the JSON reply into out.
// The whole exchange, body read included, is bounded by the client timeout.
func (c *Client) postJSON(ctx context.Context, requestID, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", provider.ErrValidation, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", provider.ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(callCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Best effort: a partial body is better than none.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if callCtx.Err() != nil {
			return c.transportError(callCtx, callCtx.Err())
		}
		return &provider.HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(callCtx, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", provider.ErrResponseFormat, err)
	}
	return nil
}

// transportError classifies a failure that happened while the request was
// in flight. Deadline expiry becomes ErrTimeout; caller cancellation is
// returned as is; anything else means the service was unreachable.
func (c *Client) transportError(callCtx context.Context, err error) error {
	switch ctxErr := callCtx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return fmt.Errorf("%w after %v: %w", provider.ErrTimeout, c.cfg.Timeout, ctxErr)
	case errors.Is(ctxErr, context.Canceled):
		return ctxErr
	}
	return fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
}
