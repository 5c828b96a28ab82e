// Package inference provides the reasoning service behind the assistant.
//
// Chat completions are abstracted behind a single Provider interface so the
// orchestrator can switch between Gemini (the default) and any
// OpenAI-compatible endpoint (OpenAI, Ollama, vLLM, Groq) without changes.
//
// Example usage:
//
//	gemini, _ := inference.NewGemini(
//	    inference.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	)
//	defer gemini.Close()
//
//	resp, _ := gemini.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{
//	        inference.NewUserMessage("What is PM-KISAN?"),
//	    },
//	    Language: "hi",
//	})
package inference

import "context"

// Provider is the reasoning service interface.
// All implementations must satisfy this interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Capabilities returns what features this provider supports.
	Capabilities() Capabilities

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Capabilities describes what features a provider supports.
type Capabilities struct {
	Chat         bool // Supports chat completions
	Multilingual bool // Answers in Indian languages
}

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// Language is the ISO 639-1 code the user prefers.
	// Providers that support it append a language hint to the prompt.
	Language string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64

	// TopP controls nucleus sampling.
	TopP float64

	// TopK limits sampling to the K most likely tokens (Gemini only).
	TopK int

	// Stop sequences that halt generation.
	Stop []string
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Message is the assistant's response.
	Message Message

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// LanguageHint is the suffix appended to the last user message when the
// request carries a preferred language.
func LanguageHint(code string) string {
	if code == "" {
		return ""
	}
	return ". The user's preferred language is " + code + "."
}
