// Package ollama provides a client for a locally hosted Ollama-compatible
// model service over HTTP.
//
// The client covers three operations, each a single JSON POST with a
// per-call timeout:
//
//   - Generate: POST /api/generate, returns the "response" field
//   - GenerateWithImages: same endpoint, with local files or base64 images attached
//   - Chat: POST /api/chat, returns "message.content"
//
// Streaming is not supported. Requests that ask for it fail before any
// network traffic with provider.ErrConfiguration. A missing response field
// is not an error and yields the empty string.
//
// # Usage
//
// Direct instantiation:
//
//	client, err := ollama.New(
//	    ollama.WithHost("gpu-box"),          // http://gpu-box:11434
//	    ollama.WithTimeout(90*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := client.Generate(ctx, ollama.GenerateRequest{
//	    Model:  "llama3.1:8b",
//	    Prompt: "Say hello in one sentence.",
//	})
//
// Using the provider registry:
//
//	import _ "github.com/randalmurphal/llmconnect/ollama"
//
//	client, err := provider.New("ollama", provider.Config{Model: "llama3.1:8b"})
//
// # Base URL
//
// The service root is resolved once, at construction: an explicit base URL
// wins (trailing slashes stripped), then a host (used as-is when it carries
// a scheme, otherwise wrapped as http://host:11434), then
// http://localhost:11434. The resolved Config never changes afterwards, so
// a Client is safe for concurrent use. WatchConfigFile builds a fresh
// Client on every config file change instead of mutating one.
//
// # Errors
//
// Every error is a *provider.Error. Use errors.Is with provider.ErrTimeout,
// provider.ErrConfiguration, provider.ErrValidation or
// provider.ErrResponseFormat, and errors.As with *provider.HTTPError or
// *provider.FileError for details.
package ollama
