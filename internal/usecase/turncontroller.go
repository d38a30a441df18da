package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
)

// TurnController coordinates the voice call: one party holds the floor
// at a time. It owns the microphone toggle, speaks interviewer lines,
// and suppresses callbacks from speech attempts that have been
// superseded. Speech callbacks arrive on provider goroutines; all state
// lives behind the mutex.
type TurnController struct {
	recognizer ports.SpeechRecognizer
	synth      ports.SpeechSynthesizer
	sink       ports.EventSink
	logger     *zap.Logger

	// onUserUtterance dispatches a recognized utterance into the
	// interview. onKickoff makes the interviewer open the call.
	// awaiting reports whether a chat request is in flight.
	onUserUtterance func(string)
	onKickoff       func()
	awaiting        func() bool

	autoStartDelay time.Duration

	mu                sync.Mutex
	listening         bool
	aiSpeaking        bool
	currentSpokenText string
	lastTriggered     string
	attempt           uint64
	nextAttempt       uint64
	autoStarted       bool
	torn              bool
	autoStartTimer    *time.Timer
}

func NewTurnController(
	recognizer ports.SpeechRecognizer,
	synth ports.SpeechSynthesizer,
	sink ports.EventSink,
	logger *zap.Logger,
	onUserUtterance func(string),
	onKickoff func(),
	awaiting func() bool,
	autoStartDelay time.Duration,
) *TurnController {
	return &TurnController{
		recognizer:      recognizer,
		synth:           synth,
		sink:            sink,
		logger:          logger,
		onUserUtterance: onUserUtterance,
		onKickoff:       onKickoff,
		awaiting:        awaiting,
		autoStartDelay:  autoStartDelay,
	}
}

// mintAttempt invalidates all pending speech callbacks and returns the
// id a new attempt should carry. Callers hold the mutex.
func (t *TurnController) mintAttempt() uint64 {
	t.nextAttempt++
	t.attempt = t.nextAttempt
	return t.attempt
}

// AutoStart schedules the interviewer's opening line once. The short
// settle delay lets the call view mount before the first request goes
// out.
func (t *TurnController) AutoStart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.autoStarted || t.torn {
		return
	}
	t.autoStarted = true
	t.autoStartTimer = time.AfterFunc(t.autoStartDelay, func() {
		t.mu.Lock()
		torn := t.torn
		t.mu.Unlock()
		if torn {
			return
		}
		t.onKickoff()
	})
}

// MicDisabled reports whether the mic toggle should be inert: the
// interviewer is thinking and the user is neither listening nor able to
// interrupt speech.
func (t *TurnController) MicDisabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.listening && t.awaiting() && !t.aiSpeaking
}

// State reports the current voice phase for the call view.
func (t *TurnController) State() domain.VoiceState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *TurnController) stateLocked() domain.VoiceState {
	switch {
	case t.aiSpeaking:
		return domain.VoiceSpeaking
	case t.listening:
		return domain.VoiceListening
	case t.awaiting():
		return domain.VoiceThinking
	default:
		return domain.VoiceIdle
	}
}

func (t *TurnController) publishLocked() {
	t.sink.VoiceStateChanged(t.stateLocked())
}

// ToggleMic starts or stops listening. Starting while the interviewer
// is speaking interrupts the speech first.
func (t *TurnController) ToggleMic(ctx context.Context) error {
	t.mu.Lock()
	if t.torn {
		t.mu.Unlock()
		return nil
	}

	if t.listening {
		t.listening = false
		t.publishLocked()
		t.mu.Unlock()
		// Stop delivers the pending final transcript, if any, through
		// the recognition callbacks.
		t.recognizer.Stop()
		return nil
	}

	if t.awaiting() && !t.aiSpeaking {
		t.mu.Unlock()
		return &domain.ValidationError{Reason: "interviewer is responding"}
	}

	if t.aiSpeaking {
		t.mintAttempt()
		t.aiSpeaking = false
		t.currentSpokenText = ""
		t.lastTriggered = ""
		t.synth.CancelAll()
	}
	t.mu.Unlock()

	err := t.recognizer.Start(ctx, ports.RecognitionEvents{
		OnFinal: func(text string) {
			t.mu.Lock()
			t.listening = false
			torn := t.torn
			if !torn {
				t.publishLocked()
			}
			t.mu.Unlock()
			if text != "" && !torn {
				t.onUserUtterance(text)
			}
		},
		OnError: func(err error) {
			t.logger.Warn("speech recognition error", zap.Error(err))
			t.mu.Lock()
			t.listening = false
			t.publishLocked()
			t.mu.Unlock()
		},
	})
	if err != nil {
		t.logger.Warn("failed to start listening", zap.Error(err))
		return err
	}

	t.mu.Lock()
	t.listening = true
	t.publishLocked()
	t.mu.Unlock()
	return nil
}

// OnAssistantUtterance speaks a new interviewer line. A line equal to
// the one already being spoken, or one already dispatched, is ignored;
// anything else supersedes the current attempt.
func (t *TurnController) OnAssistantUtterance(ctx context.Context, text string) {
	if text == "" {
		return
	}

	t.mu.Lock()
	if t.torn {
		t.mu.Unlock()
		return
	}
	shouldSpeak := !t.aiSpeaking || text != t.currentSpokenText
	if !shouldSpeak || t.lastTriggered == text {
		t.mu.Unlock()
		return
	}
	t.lastTriggered = text
	id := t.mintAttempt()
	t.mu.Unlock()

	err := t.synth.Speak(ctx, text, ports.SpeechEvents{
		OnStart: func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if id != t.attempt {
				return
			}
			t.aiSpeaking = true
			t.currentSpokenText = text
			t.publishLocked()
		},
		OnEnd: func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if id != t.attempt {
				return
			}
			t.aiSpeaking = false
			t.currentSpokenText = ""
			if t.lastTriggered == text {
				t.lastTriggered = ""
			}
			t.publishLocked()
		},
		OnError: func(err error) {
			t.logger.Warn("speech synthesis error", zap.Error(err))
			t.mu.Lock()
			defer t.mu.Unlock()
			if id != t.attempt {
				return
			}
			t.aiSpeaking = false
			t.currentSpokenText = ""
			if t.lastTriggered == text {
				t.lastTriggered = ""
			}
			t.publishLocked()
		},
	})
	if err != nil {
		t.logger.Warn("failed to speak interviewer line", zap.Error(err))
		t.mu.Lock()
		if id == t.attempt {
			t.aiSpeaking = false
			t.currentSpokenText = ""
			if t.lastTriggered == text {
				t.lastTriggered = ""
			}
			t.publishLocked()
		}
		t.mu.Unlock()
	}
}

// Teardown silences everything and invalidates all pending callbacks.
// The controller is dead afterwards.
func (t *TurnController) Teardown() {
	t.mu.Lock()
	if t.torn {
		t.mu.Unlock()
		return
	}
	t.torn = true
	t.mintAttempt()
	if t.autoStartTimer != nil {
		t.autoStartTimer.Stop()
	}
	t.listening = false
	t.aiSpeaking = false
	t.currentSpokenText = ""
	t.lastTriggered = ""
	t.mu.Unlock()

	t.synth.CancelAll()
	t.recognizer.Stop()
	t.sink.VoiceStateChanged(domain.VoiceIdle)
}
