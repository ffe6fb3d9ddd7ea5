// Package analysis turns raw transcripts into validated structured results.
// It sequences the LLM client, the response normalizer, and the schema
// validator; it never retries and never touches the network itself beyond
// the injected client.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/marisol-health/frontdesk/internal/llm"
	"github.com/marisol-health/frontdesk/internal/metrics"
	"github.com/marisol-health/frontdesk/internal/model"
)

// Analyzer runs the provider -> normalize -> validate pipeline.
type Analyzer struct {
	client   llm.Client
	logger   *slog.Logger
	provider string
}

// New creates an Analyzer. provider is the configured provider name, used
// only for logs and metrics labels.
func New(client llm.Client, provider string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		client:   client,
		logger:   logger,
		provider: provider,
	}
}

// Analyze validates the transcript, performs one synchronous provider call,
// and parses the output into a validated Analysis. Every failure is terminal
// for this request: *InputError before the call, *llm.ProviderError from the
// call (the validator is never invoked in that case), *MalformedOutputError
// or *SchemaViolationError after it.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (model.Analysis, error) {
	if err := ValidateTranscript(transcript); err != nil {
		return model.Analysis{}, err
	}

	start := time.Now()
	resp, err := a.client.Complete(ctx, SystemPrompt, BuildUserPrompt(transcript))
	duration := time.Since(start)
	if err != nil {
		return model.Analysis{}, err
	}

	metrics.AnalyzeDuration.WithLabelValues(a.provider).Observe(duration.Seconds())
	metrics.ProviderTokens.WithLabelValues(a.provider, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.ProviderTokens.WithLabelValues(a.provider, "completion").Add(float64(resp.Usage.CompletionTokens))

	a.logger.Info("LLM call completed",
		"provider", a.provider,
		"duration_ms", duration.Milliseconds(),
		"response_length", len(resp.Text),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	cleaned, err := Normalize(resp.Text)
	if err != nil {
		return model.Analysis{}, err
	}

	return Validate(cleaned)
}

// AnalyzeStream validates the transcript and opens a streaming provider
// call. The raw fragments are passed through untouched; the consumer decides
// what to do with partial output when the stream fails mid-flight.
func (a *Analyzer) AnalyzeStream(ctx context.Context, transcript string) (llm.Stream, error) {
	if err := ValidateTranscript(transcript); err != nil {
		return nil, err
	}
	return a.client.Stream(ctx, SystemPrompt, BuildUserPrompt(transcript))
}
