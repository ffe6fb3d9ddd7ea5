package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marisol-health/frontdesk/internal/analysis"
	"github.com/marisol-health/frontdesk/internal/cli"
	"github.com/marisol-health/frontdesk/internal/common"
	"github.com/marisol-health/frontdesk/internal/config"
	"github.com/marisol-health/frontdesk/internal/llm"
	"github.com/marisol-health/frontdesk/internal/model"
)

// Exit codes for analyze, one per failure kind so scripts can tell them
// apart.
const (
	exitInvalidInput    = 2
	exitProviderError   = 3
	exitMalformedOutput = 4
	exitSchemaViolation = 5
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a phone call transcript",
		Long: `Analyze a phone call transcript and print the structured result.

The transcript comes from --transcript or, when the flag is omitted, from
stdin.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("transcript", "t", "", "transcript text to analyze")
	cmd.Flags().Bool("json", false, "print the raw JSON result")
	cmd.Flags().Int("max-retries", 0, "retry transient provider failures up to this many times")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	transcript, _ := cmd.Flags().GetString("transcript")
	if transcript == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read transcript from stdin: %w", err)
		}
		transcript = strings.TrimSpace(string(data))
	}
	if transcript == "" {
		return &exitError{err: errors.New("no transcript provided: use --transcript or pipe text on stdin"), code: exitInvalidInput}
	}

	client, err := llm.NewClient(cfg.LLM())
	if err != nil {
		return common.NewUserError("failed to create LLM client", err)
	}

	analyzer := analysis.New(client, cfg.Provider.Name, slog.Default())

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	result, err := analyzeWithRetry(cmd.Context(), analyzer, transcript, cfg.Provider.Timeout, maxRetries)
	if err != nil {
		return &exitError{err: err, code: exitCodeFor(err)}
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(encoded))
		return nil
	}

	cmd.Println(cli.RenderAnalysis(result))
	return nil
}

// analyzeWithRetry runs whole analyze attempts under the retry helper. Only
// transient provider failures (timeout, upstream rate limit) are retried;
// the core pipeline itself never retries.
func analyzeWithRetry(ctx context.Context, analyzer *analysis.Analyzer, transcript string, timeout time.Duration, maxRetries int) (model.Analysis, error) {
	attempt := func(ctx context.Context) (model.Analysis, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return analyzer.Analyze(ctx, transcript)
	}

	if maxRetries <= 0 {
		return attempt(ctx)
	}

	var result model.Analysis
	err := common.WithRetry(ctx, func() error {
		var err error
		result, err = attempt(ctx)
		if err != nil && isTransient(err) {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return err
	}, common.RetryOptions{
		MaxAttempts:  maxRetries + 1,
		InitialDelay: time.Second,
	})
	return result, err
}

// isTransient reports whether a failure is worth another attempt.
func isTransient(err error) bool {
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		return false
	}
	return provErr.Kind == llm.ErrKindTimeout || provErr.Kind == llm.ErrKindRateLimited
}

// exitCodeFor maps failure kinds to stable exit codes.
func exitCodeFor(err error) int {
	var (
		inputErr  *analysis.InputError
		provErr   *llm.ProviderError
		malErr    *analysis.MalformedOutputError
		schemaErr *analysis.SchemaViolationError
	)
	switch {
	case errors.As(err, &inputErr):
		return exitInvalidInput
	case errors.As(err, &provErr):
		return exitProviderError
	case errors.As(err, &malErr):
		return exitMalformedOutput
	case errors.As(err, &schemaErr):
		return exitSchemaViolation
	default:
		return 1
	}
}
