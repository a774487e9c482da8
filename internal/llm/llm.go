// Package llm abstracts the language-model pipeline behind a small port:
// financial context plus a question in, advice text out. The remote call
// may be slow or fail; callers treat any error as recoverable.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable wraps every transport or quota failure from the remote
// model so the orchestrator can map it to a safe fallback response.
var ErrUnavailable = errors.New("language model unavailable")

// Client is the port consumed by the conversation orchestrator.
type Client interface {
	// Generate answers the question grounded in the given financial
	// context. Implementations must honor ctx cancellation.
	Generate(ctx context.Context, contextText, question string) (string, error)
}
