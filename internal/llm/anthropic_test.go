package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := newAnthropicClient(Config{
		Provider: "anthropic",
		APIKey:   "test-key",
		BaseURL:  srv.URL,
	})
	require.NoError(t, err)
	return client
}

func TestAnthropicComplete(t *testing.T) {
	var gotBody map[string]any
	client := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "{\"urgency\": "},
				{"type": "text", "text": "\"high\"}"}
			],
			"usage": {"input_tokens": 55, "output_tokens": 9}
		}`))
	})

	resp, err := client.Complete(context.Background(), "system", "user")
	require.NoError(t, err)

	assert.Equal(t, `{"urgency": "high"}`, resp.Text)
	assert.Equal(t, 55, resp.Usage.PromptTokens)
	assert.Equal(t, 9, resp.Usage.CompletionTokens)

	// The system prompt travels as a top-level field, not a message.
	assert.Equal(t, "system", gotBody["system"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
}

func TestAnthropicStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind ErrorKind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: ErrKindAuth},
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: ErrKindRateLimited},
		{name: "request timeout", status: http.StatusRequestTimeout, wantKind: ErrKindTimeout},
		{name: "overloaded", status: http.StatusServiceUnavailable, wantKind: ErrKindInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestAnthropic(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Complete(context.Background(), "system", "user")
			var provErr *ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, tt.wantKind, provErr.Kind)
			assert.Equal(t, "anthropic", provErr.Provider)
		})
	}
}

func TestAnthropicEmptyContent(t *testing.T) {
	client := newTestAnthropic(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	})

	_, err := client.Complete(context.Background(), "system", "user")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrKindInvalidResponse, provErr.Kind)
}

func TestAnthropicStream(t *testing.T) {
	client := newTestAnthropic(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"event: message_start\ndata: {\"type\":\"message_start\"}\n\n" +
				"event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"{\\\"urgency\\\"\"}}\n\n" +
				"event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\": \\\"high\\\"}\"}}\n\n" +
				"event: ping\ndata: {\"type\":\"ping\"}\n\n" +
				"event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n"))
	})

	stream, err := client.Stream(context.Background(), "system", "user")
	require.NoError(t, err)
	defer func() { _ = stream.Close() }()

	var got string
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got += fragment
	}
	assert.Equal(t, `{"urgency": "high"}`, got)
}

func TestAnthropicStreamError(t *testing.T) {
	client := newTestAnthropic(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"partial\"}}\n\n" +
				"data: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"Overloaded\"}}\n\n"))
	})

	stream, err := client.Stream(context.Background(), "system", "user")
	require.NoError(t, err)
	defer func() { _ = stream.Close() }()

	fragment, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "partial", fragment)

	_, err = stream.Recv()
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrKindInvalidResponse, provErr.Kind)
	assert.Contains(t, provErr.Message, "Overloaded")
}

func TestAnthropicRequiresAPIKey(t *testing.T) {
	_, err := newAnthropicClient(Config{Provider: "anthropic"})
	assert.Error(t, err)
}
