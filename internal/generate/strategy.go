package generate

import (
	"context"

	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/llm"
)

// Input carries everything a strategy may use: the redacted change set and
// the prepared model request.
type Input struct {
	ChangeSet *diffparse.ChangeSet
	Request   llm.Request
}

// Strategy produces a commit message from an Input.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, in Input) (string, error)
}

// llmStrategy wraps an external-model client.
type llmStrategy struct {
	client llm.Client
}

func (s *llmStrategy) Name() string { return s.client.Name() }

func (s *llmStrategy) Generate(ctx context.Context, in Input) (string, error) {
	return s.client.Send(ctx, in.Request)
}
