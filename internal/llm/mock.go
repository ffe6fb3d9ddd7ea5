package llm

import (
	"context"
	"io"
)

// MockClient is a scripted Client for tests. Set Text/Chunks for success
// paths or Err to fail both methods.
type MockClient struct {
	Err       error
	Text      string
	Chunks    []string
	StreamErr error // returned by Recv after Chunks are exhausted
	Usage     Usage

	CompleteCalls int
	StreamCalls   int
}

// Complete returns the scripted response.
func (m *MockClient) Complete(_ context.Context, _, _ string) (Response, error) {
	m.CompleteCalls++
	if m.Err != nil {
		return Response{}, m.Err
	}
	return Response{Text: m.Text, Usage: m.Usage}, nil
}

// Stream returns a stream over the scripted chunks.
func (m *MockClient) Stream(_ context.Context, _, _ string) (Stream, error) {
	m.StreamCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &MockStream{Chunks: m.Chunks, FinalErr: m.StreamErr}, nil
}

// MockStream yields its chunks in order, then FinalErr (io.EOF if unset).
type MockStream struct {
	FinalErr error
	Chunks   []string
	pos      int
	Closed   bool
}

// Recv returns the next scripted chunk.
func (s *MockStream) Recv() (string, error) {
	if s.pos >= len(s.Chunks) {
		if s.FinalErr != nil {
			return "", s.FinalErr
		}
		return "", io.EOF
	}
	chunk := s.Chunks[s.pos]
	s.pos++
	return chunk, nil
}

// Close marks the stream closed.
func (s *MockStream) Close() error {
	s.Closed = true
	return nil
}
