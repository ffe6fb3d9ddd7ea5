package llm

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// sseDecoder reads server-sent events off a response body, one event at a
// time. Multiple `data:` lines within an event are joined with `\n` per the
// SSE spec; comment lines are skipped.
type sseDecoder struct {
	r *bufio.Reader
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	return &sseDecoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the next event's concatenated data payload, or io.EOF when
// the body is exhausted.
func (d *sseDecoder) next() ([]byte, error) {
	var dataLines [][]byte
	for {
		line, err := d.r.ReadBytes('\n')
		if err != nil {
			// A body can end without a trailing blank line; flush what we have.
			line = bytes.TrimRight(line, "\r\n")
			if len(line) > 0 {
				dataLines = appendDataLine(dataLines, line)
			}
			if len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			return nil, err
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			if len(dataLines) == 0 {
				continue
			}
			return bytes.Join(dataLines, []byte("\n")), nil
		}

		if line[0] == ':' {
			continue
		}
		dataLines = appendDataLine(dataLines, line)
	}
}

func appendDataLine(dst [][]byte, line []byte) [][]byte {
	if !bytes.HasPrefix(line, []byte("data:")) {
		return dst
	}
	val := line[len("data:"):]
	if len(val) > 0 && val[0] == ' ' {
		val = val[1:]
	}
	return append(dst, append([]byte(nil), val...))
}

// extractFunc interprets one SSE event payload: the text fragment it carries
// (may be empty), whether the provider signaled completion, and any
// mid-stream failure.
type extractFunc func(data []byte) (text string, done bool, err error)

// sseStream adapts an SSE response body into the Stream contract.
type sseStream struct {
	body    io.ReadCloser
	dec     *sseDecoder
	extract extractFunc
	done    bool
	closed  bool
}

func newSSEStream(body io.ReadCloser, extract extractFunc) *sseStream {
	return &sseStream{
		body:    body,
		dec:     newSSEDecoder(body),
		extract: extract,
	}
}

func (s *sseStream) Recv() (string, error) {
	for {
		if s.closed || s.done {
			return "", io.EOF
		}

		data, err := s.dec.next()
		if err != nil {
			// Some providers close the connection without a terminal event.
			if errors.Is(err, io.EOF) {
				s.done = true
				return "", io.EOF
			}
			return "", err
		}

		text, done, err := s.extract(bytes.TrimSpace(data))
		if err != nil {
			return "", err
		}
		if done {
			s.done = true
			return "", io.EOF
		}
		if text == "" {
			continue
		}
		return text, nil
	}
}

func (s *sseStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
