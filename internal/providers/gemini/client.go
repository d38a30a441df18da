// Package gemini implements the chat backend ports on top of the Google
// Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
)

// Client talks to the Gemini API. It implements ports.ChatBackend.
type Client struct {
	client *genai.Client
	model  string
}

// New dials the Gemini API. An empty key is a configuration error so
// the caller can surface the missing-credential state instead of
// failing on the first request.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, &domain.ConfigurationError{Reason: "Gemini API key is not set"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &domain.BackendError{Op: "connect", Message: "failed to create Gemini client", Err: err}
	}
	return &Client{client: client, model: model}, nil
}

// OpenSession starts a fresh multi-turn chat with the given persona
// instruction. History lives server-side in the chat session.
func (c *Client) OpenSession(systemInstruction string) (ports.ChatSession, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return &chatSession{chat: model.StartChat()}, nil
}

// StructuredCompletion runs a one-shot prompt with JSON output forced
// via the response MIME type. The returned text may still carry a
// markdown fence; callers strip it.
func (c *Client) StructuredCompletion(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &domain.BackendError{Op: "structured_completion", Message: err.Error(), Err: err}
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

type chatSession struct {
	chat *genai.ChatSession
}

// StreamReply sends one user turn and returns a stream of reply
// fragments. The stream is driven by a goroutine; consume Events until
// closed, then check Wait.
func (s *chatSession) StreamReply(ctx context.Context, text string) (ports.ReplyStream, error) {
	iter := s.chat.SendMessageStream(ctx, genai.Text(text))
	stream := &replyStream{
		events: make(chan string),
		done:   make(chan struct{}),
	}
	go stream.pump(iter)
	return stream, nil
}

type replyStream struct {
	events chan string
	done   chan struct{}
	err    error
}

func (r *replyStream) Events() <-chan string { return r.events }

// Wait blocks until the stream has drained and reports its terminal
// error, if any.
func (r *replyStream) Wait() error {
	<-r.done
	return r.err
}

func (r *replyStream) pump(iter *genai.GenerateContentResponseIterator) {
	defer close(r.done)
	defer close(r.events)
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return
		}
		if err != nil {
			r.err = &domain.BackendError{Op: "stream", Message: err.Error(), Err: err}
			return
		}
		text, err := responseText(resp)
		if err != nil {
			// A chunk with no text parts is not fatal mid-stream.
			continue
		}
		if text != "" {
			r.events <- text
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &domain.BackendError{Op: "response", Message: "no candidates in response"}
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &domain.BackendError{Op: "response", Message: "no content in response"}
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &domain.BackendError{Op: "response", Message: fmt.Sprintf("no text parts in %d-part response", len(candidate.Content.Parts))}
	}
	return strings.Join(parts, ""), nil
}
