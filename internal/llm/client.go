// Package llm provides adapters for the external LLM APIs used to analyze
// call transcripts. Both adapters share one contract: a synchronous
// completion call and a streaming variant, each returning plain assistant
// text with the provider's response envelope already stripped.
package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers.
//
// Neither method retries internally; a failed call surfaces immediately as a
// *ProviderError and retry policy belongs to the caller. Deadlines are also
// the caller's responsibility: wrap ctx with a timeout before calling.
type Client interface {
	// Complete sends a single completion request and returns the assistant's
	// text along with usage counters.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (Response, error)

	// Stream sends a streaming completion request. The returned Stream is a
	// lazy, finite, non-restartable sequence of text fragments.
	Stream(ctx context.Context, systemPrompt, userPrompt string) (Stream, error)
}

// Response contains the assistant's raw text and token usage for one call.
type Response struct {
	Text  string
	Usage Usage
}

// Usage holds the provider's token counters for a completed call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Stream yields assistant text fragments in order. Recv returns io.EOF when
// the provider signals completion and a *ProviderError if the stream fails
// mid-flight. Close releases the underlying connection and is safe to call
// more than once.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Config holds configuration for constructing an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // overrides the provider's default endpoint, used in tests
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
