// Package llm talks to an OpenAI-compatible chat completion endpoint
// over server-sent events. Frames are parsed incrementally from the
// byte stream so a delta split across two reads is handled once the
// rest of it arrives.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowgate/flowgate/pkg/configuration"
)

var (
	ErrRateLimited   = errors.New("rate limited")
	ErrQuotaExceeded = errors.New("usage quota exceeded")
	ErrEmptyStream   = errors.New("stream produced no content")
)

const dataPrefix = "data: "

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type StreamClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	model       string
	maxTokens   int
	temperature float64
}

func NewStreamClient(opts configuration.AssistantOptions) *StreamClient {
	return &StreamClient{
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		accessToken: opts.AccessToken,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

// Stream posts the transcript and invokes onChunk for every content
// delta as it arrives. The accumulated response is returned once the
// server sends its terminator or closes the stream.
func (c *StreamClient) Stream(ctx context.Context, messages []Message, onChunk func(delta string)) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Stream:      true,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	content, err := c.consume(ctx, resp.Body, onChunk)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", ErrEmptyStream
	}
	return content, nil
}

// consume drains the event stream one buffered read at a time. Lines
// are only processed once a trailing newline is seen; a data frame
// that fails to parse is pushed back into the buffer because its tail
// has not arrived yet.
func (c *StreamClient) consume(ctx context.Context, body io.Reader, onChunk func(delta string)) (string, error) {
	var (
		textBuffer strings.Builder
		content    strings.Builder
		chunk      = make([]byte, 4096)
		buffered   string
	)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, readErr := body.Read(chunk)
		if n > 0 {
			textBuffer.WriteString(buffered)
			textBuffer.Write(chunk[:n])
			buffered = textBuffer.String()
			textBuffer.Reset()

			var done bool
			buffered, done = c.drainLines(&content, buffered, onChunk)
			if done {
				return content.String(), nil
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return content.String(), nil
			}
			return "", readErr
		}
	}
}

// drainLines processes every complete line in buffered and returns the
// unprocessed remainder plus whether the terminator was seen.
func (c *StreamClient) drainLines(content *strings.Builder, buffered string, onChunk func(delta string)) (string, bool) {
	for {
		idx := strings.IndexByte(buffered, '\n')
		if idx < 0 {
			return buffered, false
		}

		line := buffered[:idx]
		buffered = buffered[idx+1:]

		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, ":") || strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		jsonStr := strings.TrimSpace(line[len(dataPrefix):])
		if jsonStr == "[DONE]" {
			return buffered, true
		}

		var parsed completionChunk
		if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
			// Partial frame: restore the line and wait for more bytes.
			return line + "\n" + buffered, false
		}

		if len(parsed.Choices) > 0 {
			if delta := parsed.Choices[0].Delta.Content; delta != "" {
				content.WriteString(delta)
				if onChunk != nil {
					onChunk(delta)
				}
			}
		}
	}
}
