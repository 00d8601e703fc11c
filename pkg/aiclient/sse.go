package aiclient

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"strings"
)

// SSEStream reassembles server-sent events from a streaming completion
// response and decodes each data payload into a Chunk. The "[DONE]" sentinel
// terminates the stream with io.EOF.
type SSEStream struct {
	resp   *http.Response
	reader *bufio.Reader
	decode func([]byte) (Chunk, error)
}

// NewSSEStream wraps a streaming HTTP response. decode turns one event's data
// payload into a Chunk; empty chunks are skipped.
func NewSSEStream(resp *http.Response, decode func([]byte) (Chunk, error)) *SSEStream {
	return &SSEStream{
		resp:   resp,
		reader: bufio.NewReader(resp.Body),
		decode: decode,
	}
}

// Close releases the underlying response body.
func (s *SSEStream) Close() error {
	return s.resp.Body.Close()
}

// Recv returns the next non-empty chunk, or io.EOF when the provider signals
// completion.
func (s *SSEStream) Recv() (Chunk, error) {
	for {
		data, err := s.readEvent()
		if err != nil {
			return Chunk{}, err
		}
		payload := strings.TrimSpace(string(data))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			return Chunk{}, io.EOF
		}
		chunk, err := s.decode(data)
		if err != nil {
			return Chunk{}, err
		}
		if chunk.Content == "" {
			continue
		}

		return chunk, nil
	}
}

// readEvent reads lines until a blank event separator and joins the event's
// data lines into one payload.
func (s *SSEStream) readEvent() ([]byte, error) {
	var dataLines []string
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if len(dataLines) > 0 {
				return []byte(strings.Join(dataLines, "\n")), nil
			}
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}

			continue
		}
		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
		if errors.Is(err, io.EOF) {
			if len(dataLines) > 0 {
				return []byte(strings.Join(dataLines, "\n")), nil
			}

			return nil, io.EOF
		}
	}
}
