package port

import "context"

// LLMClient is the minimal interface the classifiers and reply formatter
// use to call the language model. Every call is fallible and callers must
// carry their own fallback; the model is never required for correctness.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
