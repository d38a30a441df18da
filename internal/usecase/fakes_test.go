package usecase

import (
	"context"
	"sync"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
)

type fakeStream struct {
	events chan string
	err    error
}

func newFakeStream(err error, fragments ...string) *fakeStream {
	events := make(chan string, len(fragments))
	for _, fragment := range fragments {
		events <- fragment
	}
	close(events)
	return &fakeStream{events: events, err: err}
}

func (f *fakeStream) Events() <-chan string { return f.events }
func (f *fakeStream) Wait() error           { return f.err }

type fakeChatSession struct {
	mu      sync.Mutex
	sent    []string
	streams []*fakeStream
	openErr error

	// started is signalled once per StreamReply call; gate, when set,
	// blocks the stream from being returned until closed.
	started chan struct{}
	gate    chan struct{}
}

func (f *fakeChatSession) StreamReply(ctx context.Context, text string) (ports.ReplyStream, error) {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	var stream *fakeStream
	if len(f.streams) > 0 {
		stream = f.streams[0]
		f.streams = f.streams[1:]
	} else {
		stream = newFakeStream(nil)
	}
	openErr := f.openErr
	started := f.started
	gate := f.gate
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if openErr != nil {
		return nil, openErr
	}
	return stream, nil
}

func (f *fakeChatSession) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeBackend struct {
	mu      sync.Mutex
	session *fakeChatSession
	openErr error

	instructions []string
	prompts      []string
	completions  []string
	completeErr  error
}

func (f *fakeBackend) OpenSession(systemInstruction string) (ports.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instructions = append(f.instructions, systemInstruction)
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.session == nil {
		f.session = &fakeChatSession{}
	}
	return f.session, nil
}

func (f *fakeBackend) StructuredCompletion(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	if len(f.completions) == 0 {
		return "", nil
	}
	out := f.completions[0]
	f.completions = f.completions[1:]
	return out, nil
}

type fakeSink struct {
	mu          sync.Mutex
	transcripts [][]domain.Entry
	voiceStates []domain.VoiceState
	modes       []domain.AppMode
	banners     []string
	notices     []string
	credentials int
}

func (f *fakeSink) TranscriptChanged(entries []domain.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcripts = append(f.transcripts, entries)
}

func (f *fakeSink) VoiceStateChanged(state domain.VoiceState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voiceStates = append(f.voiceStates, state)
}

func (f *fakeSink) ModeChanged(mode domain.AppMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes = append(f.modes, mode)
}

func (f *fakeSink) Banner(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banners = append(f.banners, message)
}

func (f *fakeSink) Notice(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, message)
}

func (f *fakeSink) CredentialMissing() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials++
}

func (f *fakeSink) credentialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credentials
}

func (f *fakeSink) lastVoiceState() (domain.VoiceState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.voiceStates) == 0 {
		return "", false
	}
	return f.voiceStates[len(f.voiceStates)-1], true
}

type fakeRecognizer struct {
	mu       sync.Mutex
	starts   int
	stops    int
	startErr error
	events   ports.RecognitionEvents
}

func (f *fakeRecognizer) Start(ctx context.Context, events ports.RecognitionEvents) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.events = events
	return nil
}

func (f *fakeRecognizer) Stop() {
	f.mu.Lock()
	events := f.events
	f.events = ports.RecognitionEvents{}
	f.stops++
	f.mu.Unlock()
	// A stop with no captured speech delivers nothing.
	_ = events
}

// finish simulates the recognizer delivering a final utterance.
func (f *fakeRecognizer) finish(text string) {
	f.mu.Lock()
	events := f.events
	f.events = ports.RecognitionEvents{}
	f.mu.Unlock()
	if events.OnFinal != nil {
		events.OnFinal(text)
	}
}

type spokenUtterance struct {
	text   string
	events ports.SpeechEvents
}

type fakeSynthesizer struct {
	mu       sync.Mutex
	spoken   []spokenUtterance
	cancels  int
	speakErr error
}

func (f *fakeSynthesizer) Speak(ctx context.Context, text string, events ports.SpeechEvents) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, spokenUtterance{text: text, events: events})
	return nil
}

func (f *fakeSynthesizer) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
}

func (f *fakeSynthesizer) last() (spokenUtterance, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.spoken) == 0 {
		return spokenUtterance{}, false
	}
	return f.spoken[len(f.spoken)-1], true
}

func (f *fakeSynthesizer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}
