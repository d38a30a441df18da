package ports

import (
	"context"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// ReplyStream delivers one assistant turn as ordered text fragments. The
// concatenation of every fragment, in channel order, is the full utterance;
// fragment boundaries carry no meaning. Wait blocks until the stream is
// drained and returns the terminal error, if any.
type ReplyStream interface {
	Events() <-chan string
	Wait() error
}

// ChatSession is an open conversational context bound to one system
// instruction. Turns are serialized: a StreamReply must be driven to
// completion or abandoned before the next call on the same session.
type ChatSession interface {
	StreamReply(ctx context.Context, text string) (ReplyStream, error)
}

// ChatBackend creates chat sessions and serves one-shot structured
// completions used for reviews.
type ChatBackend interface {
	OpenSession(systemInstruction string) (ChatSession, error)
	StructuredCompletion(ctx context.Context, prompt string) (string, error)
}

// ProfileStore persists the user profile. Load never fails: missing or
// corrupt storage yields the zero profile.
type ProfileStore interface {
	Load() domain.Profile
	Save(profile domain.Profile) error
}

// RecognitionEvents carries the speech-capture callback contract: one final
// result or one error per capture attempt.
type RecognitionEvents struct {
	OnFinal func(text string)
	OnError func(err error)
}

// SpeechRecognizer captures one user utterance per Start/Stop cycle.
type SpeechRecognizer interface {
	Start(ctx context.Context, events RecognitionEvents) error
	Stop()
}

// SpeechEvents carries the synthesis callback contract.
type SpeechEvents struct {
	OnStart func()
	OnEnd   func()
	OnError func(err error)
}

// SpeechSynthesizer voices assistant text. Speak is asynchronous; progress
// arrives through events. CancelAll best-effort stops any in-flight
// synthesis; its pending callbacks may still fire afterwards and are the
// caller's job to discard.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text string, events SpeechEvents) error
	CancelAll()
}

// Clipboard writes text into the system clipboard.
type Clipboard interface {
	SetText(ctx context.Context, text string) error
}

// EventSink emits backend state to the UI.
type EventSink interface {
	TranscriptChanged(entries []domain.Entry)
	VoiceStateChanged(state domain.VoiceState)
	ModeChanged(mode domain.AppMode)
	Banner(message string)
	Notice(message string)
	CredentialMissing()
}
