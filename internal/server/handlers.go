package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/marisol-health/frontdesk/internal/analysis"
	"github.com/marisol-health/frontdesk/internal/llm"
)

// Stable error codes: each failure kind maps to one distinct outward signal
// so callers can tell "the model said something we couldn't parse" from
// "the model is unavailable" from "you're calling too fast".
const (
	codeInvalidInput    = "invalid_input"
	codeUnauthorized    = "unauthorized"
	codeRateLimited     = "rate_limited"
	codeMalformedOutput = "malformed_output"
	codeSchemaViolation = "schema_violation"
	codeInternal        = "internal"
)

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}

// mapError converts a pipeline failure into its outward signal.
func mapError(err error) (status int, code, msg string) {
	var (
		inputErr  *analysis.InputError
		provErr   *llm.ProviderError
		malErr    *analysis.MalformedOutputError
		schemaErr *analysis.SchemaViolationError
	)

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, codeInvalidInput, inputErr.Error()
	case errors.As(err, &provErr):
		return http.StatusBadGateway, "provider_" + string(provErr.Kind),
			fmt.Sprintf("LLM analysis failed: %s", provErr.Kind)
	case errors.As(err, &malErr):
		return http.StatusBadGateway, codeMalformedOutput, "model output was not parseable JSON"
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, codeSchemaViolation, schemaErr.Error()
	default:
		return http.StatusInternalServerError, codeInternal, "internal error"
	}
}

// handleHealth reports service status and the configured provider.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeInvalidInput, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"provider": s.provider,
	})
}

// handleAnalyze runs the synchronous pipeline and returns the validated
// analysis as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	transcript, ok := s.decodeTranscript(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.analyzer.Analyze(ctx, transcript)
	if err != nil {
		status, code, msg := mapError(err)
		s.logger.Error("analysis failed",
			"request_id", requestIDFromContext(r.Context()),
			"code", code,
			"error", err)
		writeError(w, status, code, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// handleAnalyzeStream streams the raw model output fragment-by-fragment as
// Server-Sent Events, ending with a [DONE] sentinel. Fragments are JSON
// strings so whitespace and newlines survive the wire format.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	transcript, ok := s.decodeTranscript(w, r)
	if !ok {
		return
	}

	stream, err := s.analyzer.AnalyzeStream(r.Context(), transcript)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, status, code, msg)
		return
	}
	defer func() { _ = stream.Close() }()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeInternal, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}
		if err != nil {
			// Headers are gone; surface the failure as a terminal SSE event.
			_, code, msg := mapError(err)
			payload, _ := json.Marshal(errorResponse{Error: msg, Code: code})
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
			flusher.Flush()
			s.logger.Error("stream failed",
				"request_id", requestIDFromContext(r.Context()),
				"error", err)
			return
		}

		encoded, _ := json.Marshal(fragment)
		fmt.Fprintf(w, "data: %s\n\n", encoded)
		flusher.Flush()
	}
}

// decodeTranscript parses and pre-checks the request body. It writes the
// error response itself when the body is unusable.
func (s *Server) decodeTranscript(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeInvalidInput, "method not allowed")
		return "", false
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, codeInvalidInput, "request body too large")
			return "", false
		}
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid JSON body")
		return "", false
	}

	if req.Transcript == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "transcript is required")
		return "", false
	}

	return req.Transcript, true
}
