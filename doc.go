// Package llmconnect is a small client toolkit for locally hosted LLM
// services.
//
// Each subpackage can be used independently:
//
//   - ollama: HTTP client for an Ollama-compatible service (generate,
//     generate with images, chat), with config file loading and watching
//   - provider: backend-agnostic Client interface, error kinds and registry
//   - providers: blank import that registers every bundled provider
//
// The llmconnect command in cmd/llmconnect wraps the ollama client for use
// from a shell.
//
// # Quick Start
//
//	import "github.com/randalmurphal/llmconnect/ollama"
//
//	client, err := ollama.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := client.Generate(ctx, ollama.GenerateRequest{
//	    Model:  "llama3.1:8b",
//	    Prompt: "Say hello in one sentence.",
//	})
//
// # Design Philosophy
//
//   - One request, one response: no streaming, no retries, no sessions
//   - Every call bounded by a timeout
//   - Errors classified by kind, inspectable with errors.Is and errors.As
//   - Configuration fixed at construction, so clients are safe to share
package llmconnect
