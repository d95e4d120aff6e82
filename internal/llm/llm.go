package llm

import (
	"context"
	"fmt"
)

// Request carries the already-redacted payload and generation options.
type Request struct {
	Diff           string // redacted unified diff text
	Style          string // "conventional" or "casual"
	Explain        bool
	Purpose        string
	Branch         string
	RecentSubjects []string
	MaxTokens      int
}

// Client is the external-model adapter contract.
type Client interface {
	Send(ctx context.Context, req Request) (string, error)
	Name() string
}

// New creates a client by provider name.
func New(provider, model string) (Client, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
