package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Tools             []Tool
	Temperature       float64
	MaxTokens         int

	// ResponseSchema, when set, constrains the model to emit JSON matching
	// the schema. Providers without native schema support fall back to
	// JSON mode with the schema embedded in the prompt.
	ResponseSchema map[string]interface{}
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

// Part represents a message part (text, inline image, or function call)
type Part struct {
	Text             string
	InlineData       *InlineData
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// InlineData carries base64-encoded media for vision requests.
type InlineData struct {
	MIMEType string
	Data     string
}

// Tool represents a function declaration
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON Schema
}

// FunctionCall represents a model's function call request
type FunctionCall struct {
	Name string
	Args map[string]interface{}
}

// FunctionResponse represents a function execution result
type FunctionResponse struct {
	Name     string
	Response interface{}
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Text returns the first text part of the response content.
func (r *Response) Text() string {
	for _, p := range r.Content.Parts {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
