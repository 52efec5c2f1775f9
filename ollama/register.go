package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/randalmurphal/llmconnect/provider"
)

func init() {
	provider.Register(ProviderName, NewFromProviderConfig)
}

// NewFromProviderConfig creates a provider.Client backed by an Ollama Client.
// This is the factory function registered with the provider registry.
//
// Recognized options: "keep_alive" (string) and "format" ("json").
func NewFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := NewWithConfig(Config{
		BaseURL: cfg.BaseURL,
		Host:    cfg.Host,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	adapter := &providerAdapter{
		client:    client,
		model:     cfg.Model,
		system:    cfg.SystemPrompt,
		keepAlive: cfg.GetStringOption("keep_alive", ""),
	}
	if cfg.GetStringOption("format", "") == "json" {
		adapter.format = FormatJSON
	}
	return adapter, nil
}

// providerAdapter maps provider requests onto Chat.
type providerAdapter struct {
	client    *Client
	model     string
	system    string
	keepAlive string
	format    json.RawMessage
}

// Complete implements provider.Client.
func (a *providerAdapter) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if len(req.Messages) == 0 {
		return nil, provider.NewError(ProviderName, opComplete,
			fmt.Errorf("%w: at least one message is required", provider.ErrValidation), false)
	}

	model := req.Model
	if model == "" {
		model = a.model
	}
	system := req.SystemPrompt
	if system == "" {
		system = a.system
	}

	messages := make([]ChatMessage, 0, len(req.Messages)+1)
	if system != "" {
		messages = append(messages, ChatMessage{Role: provider.RoleSystem, Content: system})
	}
	for _, m := range req.Messages {
		messages = append(messages, ChatMessage{
			Role:    m.Role,
			Content: m.GetText(),
			Images:  m.Images(),
		})
	}

	start := time.Now()
	resp, err := a.client.chat(ctx, opComplete, ChatRequest{
		Model:     model,
		Messages:  messages,
		Format:    a.format,
		Options:   chatOptions(req),
		KeepAlive: a.keepAlive,
	})
	if err != nil {
		return nil, err
	}

	served := resp.Model
	if served == "" {
		served = model
	}
	return &provider.Response{
		Content:   resp.Message.Content,
		Model:     served,
		Duration:  time.Since(start),
		RequestID: resp.requestID,
		Usage: provider.TokenUsage{
			InputTokens:  resp.PromptEvalCount,
			OutputTokens: resp.EvalCount,
			TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}

// Provider implements provider.Client.
func (a *providerAdapter) Provider() string {
	return ProviderName
}

// Capabilities implements provider.Client.
func (a *providerAdapter) Capabilities() provider.Capabilities {
	return provider.OllamaCapabilities
}

// Close implements provider.Client. The client holds no resources of its own.
func (a *providerAdapter) Close() error {
	return nil
}

// chatOptions merges the portable sampling fields into the service options.
// Explicit Options entries win.
func chatOptions(req provider.Request) map[string]any {
	opts := make(map[string]any, len(req.Options)+2)
	if req.Temperature != 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}
	maps.Copy(opts, req.Options)
	if len(opts) == 0 {
		return nil
	}
	return opts
}
