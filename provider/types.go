package provider

import "time"

// Request configures an LLM completion call.
// This is the provider-agnostic request format used across all providers.
type Request struct {
	// SystemPrompt sets the system message that guides the model's behavior.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Messages is the conversation history to send to the model.
	Messages []Message `json:"messages"`

	// Model specifies which model to use (provider-specific name).
	// Examples: "llama3.1:8b", "qwen2.5vl:7b"
	Model string `json:"model,omitempty"`

	// MaxTokens limits the response length.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls response randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64 `json:"temperature,omitempty"`

	// Options holds provider-specific tuning parameters passed through unmodified.
	Options map[string]any `json:"options,omitempty"`
}

// Message is a conversation turn.
// For simple text messages, use Content. For messages carrying images,
// use ContentParts instead.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ContentParts enables multimodal content (text + images).
	// If set, takes precedence over Content.
	ContentParts []ContentPart `json:"content_parts,omitempty"`
}

// ContentPart represents a piece of multimodal content.
type ContentPart struct {
	// Type indicates the content type: "text" or "image".
	Type string `json:"type"`

	// Text content (when Type == "text")
	Text string `json:"text,omitempty"`

	// ImageBase64 is base64-encoded image data (when Type == "image").
	ImageBase64 string `json:"image_base64,omitempty"`

	// MediaType specifies the MIME type (e.g., "image/png", "image/jpeg")
	MediaType string `json:"media_type,omitempty"`
}

// NewTextMessage creates a simple text message.
func NewTextMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// NewImageBase64Message creates a message with an inline base64 image.
func NewImageBase64Message(role Role, text, base64Data, mediaType string) Message {
	return Message{
		Role: role,
		ContentParts: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image", ImageBase64: base64Data, MediaType: mediaType},
		},
	}
}

// IsMultimodal returns true if the message has multimodal content.
func (m Message) IsMultimodal() bool {
	return len(m.ContentParts) > 0
}

// GetText returns the text content of the message.
// For multimodal messages, concatenates all text parts.
func (m Message) GetText() string {
	if !m.IsMultimodal() {
		return m.Content
	}
	var text string
	for _, part := range m.ContentParts {
		if part.Type == "text" {
			text += part.Text
		}
	}
	return text
}

// Images returns the base64 payloads of all image parts, in order.
func (m Message) Images() []string {
	var images []string
	for _, part := range m.ContentParts {
		if part.Type == "image" && part.ImageBase64 != "" {
			images = append(images, part.ImageBase64)
		}
	}
	return images
}

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the standard roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model. Empty, never absent,
	// when the service omitted it.
	Content string `json:"content"`

	// Usage tracks token consumption for this request, when reported.
	Usage TokenUsage `json:"usage"`

	// Model is the model that served the request.
	Model string `json:"model"`

	// Duration is the wall-clock time of the call.
	Duration time.Duration `json:"duration"`

	// RequestID correlates the call with client logs.
	RequestID string `json:"request_id,omitempty"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
