package llm

import "context"

// Client abstracts text-generation providers for deck summarization.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
