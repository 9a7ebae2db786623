// Package inference wraps the model endpoint behind a minimal client
// interface. One call in, one classified result out; retry and caching live
// with the callers.
package inference

import (
	"context"
	"time"
)

// Request carries everything that determines one inference call.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client issues a single completion request against the model endpoint.
// Implementations return the raw response text or a *CallError.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
