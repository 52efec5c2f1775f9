package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/llmconnect/provider"
)

// FormatJSON asks the service for a JSON-mode response without a schema.
// For a schema-constrained response, use SchemaFor.
var FormatJSON = json.RawMessage(`"json"`)

// GenerateRequest is a single-prompt completion.
type GenerateRequest struct {
	// Model is the model name, e.g. "llama3.1:8b". Required.
	Model string

	// Prompt is the input text. Required.
	Prompt string

	// System overrides the model's system prompt.
	System string

	// Images are base64-encoded images, in order, for multimodal models.
	Images []string

	// Format constrains the output: FormatJSON or a JSON schema.
	Format json.RawMessage

	// Options are service-defined tuning parameters (e.g. "temperature"),
	// passed through unmodified.
	Options map[string]any

	// KeepAlive controls how long the model stays loaded, e.g. "5m".
	KeepAlive string

	// Stream must be false. Streaming responses are not supported and
	// requesting them fails with provider.ErrConfiguration.
	Stream bool
}

// ImageRequest is a completion over images read from disk or supplied
// pre-encoded. Exactly one of ImagePaths and ImagesBase64 must be set.
type ImageRequest struct {
	Model  string
	Prompt string
	System string

	// ImagePaths are local files, read and base64-encoded in order.
	ImagePaths []string

	// ImagesBase64 are already-encoded images, sent in order.
	ImagesBase64 []string

	Format    json.RawMessage
	Options   map[string]any
	KeepAlive string
	Stream    bool
}

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role    provider.Role `json:"role"`
	Content string        `json:"content"`

	// Images are base64-encoded images attached to this turn.
	Images []string `json:"images,omitempty"`
}

// ChatRequest is a chat completion over an ordered message history.
type ChatRequest struct {
	// Model is the model name. Required.
	Model string

	// Messages is the conversation so far. Required, each with content.
	Messages []ChatMessage

	Format    json.RawMessage
	Options   map[string]any
	KeepAlive string

	// Stream must be false.
	Stream bool
}

// generatePayload is the /api/generate wire body.
type generatePayload struct {
	Model     string          `json:"model"`
	Prompt    string          `json:"prompt"`
	System    string          `json:"system,omitempty"`
	Images    []string        `json:"images,omitempty"`
	Format    json.RawMessage `json:"format,omitempty"`
	Options   map[string]any  `json:"options,omitempty"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Stream    bool            `json:"stream"`
}

// chatPayload is the /api/chat wire body.
type chatPayload struct {
	Model     string          `json:"model"`
	Messages  []ChatMessage   `json:"messages"`
	Format    json.RawMessage `json:"format,omitempty"`
	Options   map[string]any  `json:"options,omitempty"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Stream    bool            `json:"stream"`
}

// generateResponse is the subset of the /api/generate reply we consume.
type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// chatResponse is the subset of the /api/chat reply we consume.
type chatResponse struct {
	Model           string      `json:"model"`
	Message         ChatMessage `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`

	requestID string
}

func (r GenerateRequest) validate() error {
	if r.Stream {
		return errStreamUnsupported
	}
	if r.Model == "" {
		return fmt.Errorf("%w: model is required", provider.ErrValidation)
	}
	if r.Prompt == "" {
		return fmt.Errorf("%w: prompt is required", provider.ErrValidation)
	}
	for i, img := range r.Images {
		if img == "" {
			return fmt.Errorf("%w: image %d is empty", provider.ErrValidation, i)
		}
	}
	return validateFormat(r.Format)
}

func (r GenerateRequest) payload() generatePayload {
	return generatePayload{
		Model:     r.Model,
		Prompt:    r.Prompt,
		System:    r.System,
		Images:    r.Images,
		Format:    r.Format,
		Options:   r.Options,
		KeepAlive: r.KeepAlive,
		Stream:    false,
	}
}

// generateRequest carries everything but the images, which are resolved
// separately so file reads happen only after cheap checks pass.
func (r ImageRequest) generateRequest(images []string) GenerateRequest {
	return GenerateRequest{
		Model:     r.Model,
		Prompt:    r.Prompt,
		System:    r.System,
		Images:    images,
		Format:    r.Format,
		Options:   r.Options,
		KeepAlive: r.KeepAlive,
		Stream:    r.Stream,
	}
}

func (r ChatRequest) validate() error {
	if r.Stream {
		return errStreamUnsupported
	}
	if r.Model == "" {
		return fmt.Errorf("%w: model is required", provider.ErrValidation)
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("%w: at least one message is required", provider.ErrValidation)
	}
	for i, m := range r.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has invalid role %q", provider.ErrValidation, i, m.Role)
		}
		if m.Content == "" {
			return fmt.Errorf("%w: message %d has empty content", provider.ErrValidation, i)
		}
	}
	return validateFormat(r.Format)
}

func (r ChatRequest) payload() chatPayload {
	return chatPayload{
		Model:     r.Model,
		Messages:  r.Messages,
		Format:    r.Format,
		Options:   r.Options,
		KeepAlive: r.KeepAlive,
		Stream:    false,
	}
}

var errStreamUnsupported = fmt.Errorf("%w: streaming responses are not supported", provider.ErrConfiguration)

func validateFormat(format json.RawMessage) error {
	if len(format) > 0 && !json.Valid(format) {
		return fmt.Errorf("%w: format is not valid JSON", provider.ErrValidation)
	}
	return nil
}
