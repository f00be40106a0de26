package interpret

import (
	"context"
	"fmt"
	"time"
)

// LLMClient is the remote interpretation call. Implementations must honor
// context cancellation; the gateway wraps every call in a deadline.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ClientOptions selects and configures a provider.
type ClientOptions struct {
	Provider string // "openai" (any OpenAI-compatible endpoint), "gemini"
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewClient builds the configured provider. An empty API key is not an
// error here (the gateway treats a nil client as "remote disabled" and
// callers may prefer that) but an unknown provider is.
func NewClient(opts ClientOptions) (LLMClient, error) {
	switch opts.Provider {
	case "", "openai":
		return NewOpenAIClient(opts), nil
	case "gemini":
		return NewGeminiClient(opts)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
