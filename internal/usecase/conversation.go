// Package usecase holds the application logic: conversation streaming,
// the networking simulator, the mock-interview session, voice turn
// taking, and view routing. Everything here is transport-free and talks
// to the outside world through the ports package.
package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/transcript"
)

// StreamMode selects how assistant replies land in the transcript.
type StreamMode string

const (
	// StreamLive appends a loading placeholder immediately and mutates
	// it as fragments arrive. Used for the networking chat view.
	StreamLive StreamMode = "live"
	// StreamWhole buffers the full reply and appends it as one entry.
	// Used for the voice interview, which speaks complete utterances.
	StreamWhole StreamMode = "whole"
)

const (
	networkingErrorText = "Error: Could not get response."
	interviewErrorText  = "Error: Could not get AI response."
	emptyReplyText      = "AI did not provide a response."
)

// Conversation owns one chat transcript and the session behind it. A
// single request may be in flight at a time; sends and review requests
// share that slot. Once frozen (a review has landed) the conversation
// only accepts reads.
type Conversation struct {
	log     *transcript.Log
	session ports.ChatSession
	sink    ports.EventSink
	logger  *zap.Logger
	mode    StreamMode

	// onAuthError fires when a request fails in a way that points at a
	// missing or invalid credential.
	onAuthError func()

	mu       sync.Mutex
	inFlight bool
	frozen   bool

	now   func() time.Time
	newID func() string
}

func NewConversation(session ports.ChatSession, sink ports.EventSink, logger *zap.Logger, mode StreamMode, onAuthError func()) *Conversation {
	return &Conversation{
		log:         transcript.NewLog(),
		session:     session,
		sink:        sink,
		logger:      logger,
		mode:        mode,
		onAuthError: onAuthError,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Transcript returns a snapshot of the current entries.
func (c *Conversation) Transcript() []domain.Entry {
	return c.log.Snapshot()
}

// Awaiting reports whether a request is in flight.
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Frozen reports whether the conversation has been closed for input.
func (c *Conversation) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen
}

func (c *Conversation) freeze() {
	c.mu.Lock()
	c.frozen = true
	c.mu.Unlock()
}

// beginFlight claims the single in-flight slot. It fails when a request
// is already running or the conversation is frozen.
func (c *Conversation) beginFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight || c.frozen {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Conversation) endFlight() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// seed appends an entry outside any request flow, for intro and status
// lines.
func (c *Conversation) seed(sender domain.Sender, text string) {
	c.log.Append(domain.Entry{
		ID:        c.newID(),
		Text:      text,
		Sender:    sender,
		Timestamp: c.now(),
	})
	c.publish()
}

// Send delivers one user message and streams the reply. The user's text
// is appended before the request goes out. Concurrent sends are
// rejected, not queued.
func (c *Conversation) Send(ctx context.Context, text string) error {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return &domain.ValidationError{Reason: "message is empty"}
	}
	if !c.beginFlight() {
		return &domain.ValidationError{Reason: "another request is in progress"}
	}
	defer c.endFlight()

	c.log.Append(domain.Entry{
		ID:        c.newID(),
		Text:      trimmedText,
		Sender:    domain.SenderUser,
		Timestamp: c.now(),
	})
	c.publish()

	return c.deliver(ctx, trimmedText)
}

// Kickoff opens the exchange without a visible user turn: a fixed
// greeting goes to the backend so the persona speaks first, and nothing
// is appended for the user.
func (c *Conversation) Kickoff(ctx context.Context) error {
	if !c.beginFlight() {
		return &domain.ValidationError{Reason: "another request is in progress"}
	}
	defer c.endFlight()
	return c.deliver(ctx, "Hello.")
}

func (c *Conversation) deliver(ctx context.Context, text string) error {
	switch c.mode {
	case StreamWhole:
		return c.deliverWhole(ctx, text)
	default:
		return c.deliverLive(ctx, text)
	}
}

// deliverLive renders the reply into a placeholder entry as fragments
// stream in. The placeholder starts in the loading state and leaves it
// on the first fragment.
func (c *Conversation) deliverLive(ctx context.Context, text string) error {
	placeholderID := c.newID()
	c.log.Append(domain.Entry{
		ID:        placeholderID,
		Sender:    domain.SenderAssistant,
		Timestamp: c.now(),
		IsLoading: true,
	})
	c.publish()

	stream, err := c.session.StreamReply(ctx, text)
	if err != nil {
		c.failEntry(placeholderID, networkingErrorText, err)
		return err
	}

	var full strings.Builder
	for fragment := range stream.Events() {
		full.WriteString(fragment)
		rendered := full.String()
		c.log.UpdateLast(transcript.ByID(placeholderID), func(e *domain.Entry) {
			e.Text = rendered
			e.IsLoading = false
		})
		c.publish()
	}
	if err := stream.Wait(); err != nil {
		c.failEntry(placeholderID, networkingErrorText, err)
		return err
	}

	if full.Len() == 0 {
		c.log.UpdateLast(transcript.ByID(placeholderID), func(e *domain.Entry) {
			e.Text = emptyReplyText
			e.IsLoading = false
		})
		c.publish()
	}
	return nil
}

// deliverWhole buffers the entire reply before touching the transcript.
func (c *Conversation) deliverWhole(ctx context.Context, text string) error {
	stream, err := c.session.StreamReply(ctx, text)
	if err != nil {
		c.appendError(interviewErrorText, err)
		return err
	}

	var full strings.Builder
	for fragment := range stream.Events() {
		full.WriteString(fragment)
	}
	if err := stream.Wait(); err != nil {
		c.appendError(interviewErrorText, err)
		return err
	}

	reply := strings.TrimSpace(full.String())
	if reply == "" {
		c.seed(domain.SenderSystem, emptyReplyText)
		return nil
	}
	c.log.Append(domain.Entry{
		ID:        c.newID(),
		Text:      reply,
		Sender:    domain.SenderAssistant,
		Timestamp: c.now(),
	})
	c.publish()
	return nil
}

// LastAssistantText returns the newest assistant entry, if any. The
// voice layer uses it to decide what to speak after a turn completes.
func (c *Conversation) LastAssistantText() (string, bool) {
	entries := c.log.Snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Sender == domain.SenderAssistant && !entries[i].IsLoading && !entries[i].IsError {
			return entries[i].Text, true
		}
	}
	return "", false
}

// HasUserTurn reports whether the user has said anything yet.
func (c *Conversation) HasUserTurn() bool {
	return c.log.HasSender(domain.SenderUser)
}

func (c *Conversation) failEntry(id, message string, cause error) {
	c.logger.Warn("chat request failed", zap.Error(cause))
	c.log.UpdateLast(transcript.ByID(id), func(e *domain.Entry) {
		e.Text = message
		e.IsLoading = false
		e.IsError = true
	})
	c.publish()
	c.noteAuthError(cause)
}

func (c *Conversation) appendError(message string, cause error) {
	c.logger.Warn("chat request failed", zap.Error(cause))
	c.log.Append(domain.Entry{
		ID:        c.newID(),
		Text:      message,
		Sender:    domain.SenderSystem,
		Timestamp: c.now(),
		IsError:   true,
	})
	c.publish()
	c.noteAuthError(cause)
}

func (c *Conversation) noteAuthError(err error) {
	if domain.IsCredential(err) && c.onAuthError != nil {
		c.onAuthError()
	}
}

func (c *Conversation) publish() {
	c.sink.TranscriptChanged(c.log.Snapshot())
}
