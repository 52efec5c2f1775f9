// Package provider defines the unified interface for local LLM service clients.
//
// A provider wraps one model-serving backend behind a small, synchronous API:
// send a Request, get back a Response. Providers register themselves by name
// so applications can pick a backend from configuration.
//
// # Usage
//
// Create a client using the registry:
//
//	import _ "github.com/randalmurphal/llmconnect/providers"
//
//	client, err := provider.New("ollama", provider.Config{
//	    Model:   "llama3.1:8b",
//	    Host:    "gpu-box:11434",
//	    Timeout: 90 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Complete(ctx, provider.Request{
//	    Messages: []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hello!")},
//	})
//
// # Available Providers
//
//   - "ollama": Ollama-compatible HTTP service (default http://localhost:11434)
//
// # Errors
//
// Every failure returned by a provider is a *Error wrapping one of the
// sentinel kinds in errors.go, so callers can branch with errors.Is and
// errors.As without depending on a specific backend.
package provider

import "context"

// Client is the unified interface for LLM providers.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation; providers add their own per-call timeout.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Provider returns the provider name (e.g., "ollama").
	Provider() string

	// Capabilities returns what this provider natively supports.
	Capabilities() Capabilities

	// Close releases any resources held by the client.
	Close() error
}

// Capabilities describes what a provider natively supports.
type Capabilities struct {
	// Streaming indicates if the provider delivers incremental responses.
	Streaming bool `json:"streaming"`

	// Tools indicates if the provider supports tool/function calling.
	Tools bool `json:"tools"`

	// Sessions indicates if the provider keeps multi-turn state server-side.
	Sessions bool `json:"sessions"`

	// Images indicates if the provider accepts image inputs.
	Images bool `json:"images"`

	// StructuredOutput indicates if the provider can constrain output to a JSON schema.
	StructuredOutput bool `json:"structured_output"`
}

// OllamaCapabilities describes the Ollama HTTP client.
// Streaming is deliberately off: the client always sends stream=false.
var OllamaCapabilities = Capabilities{
	Streaming:        false,
	Tools:            false,
	Sessions:         false,
	Images:           true,
	StructuredOutput: true,
}
