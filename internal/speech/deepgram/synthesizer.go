package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/speech"
)

// SynthConfig controls Aura text-to-speech requests.
type SynthConfig struct {
	APIKey     string
	APIBaseURL string
	SpeakModel string
	Timeout    time.Duration
}

func (c *SynthConfig) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.deepgram.com/v1"
	}
	if c.SpeakModel == "" {
		c.SpeakModel = "aura-asteria-en"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Synthesizer speaks text through the Aura TTS endpoint and a local
// audio player. Utterances play one at a time; CancelAll interrupts the
// current one and drops anything queued behind it.
type Synthesizer struct {
	cfg    SynthConfig
	player *speech.Player
	http   *http.Client
	log    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    int
}

func NewSynthesizer(cfg SynthConfig, player *speech.Player, log *zap.Logger) *Synthesizer {
	cfg.applyDefaults()
	return &Synthesizer{
		cfg:    cfg,
		player: player,
		http:   &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Speak fetches audio for the text and plays it. It returns as soon as
// the utterance is scheduled; progress arrives through the events.
// OnStart fires when playback begins, then exactly one of OnEnd or
// OnError. A cancelled utterance still gets OnEnd.
func (s *Synthesizer) Speak(ctx context.Context, text string, events ports.SpeechEvents) error {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return &domain.CapabilityError{Capability: "speech synthesis", Reason: "Deepgram API key is not set"}
	}
	if err := s.player.Available(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return &domain.ValidationError{Reason: "nothing to speak"}
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	playCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go s.run(playCtx, gen, text, events)
	return nil
}

// CancelAll interrupts the current utterance.
func (s *Synthesizer) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

func (s *Synthesizer) run(ctx context.Context, gen int, text string, events ports.SpeechEvents) {
	audio, err := s.fetchAudio(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			s.emitEnd(events)
			return
		}
		s.log.Warn("speech synthesis failed", zap.Error(err))
		if events.OnError != nil {
			events.OnError(err)
		}
		return
	}
	defer audio.Close()

	// Bail out if a newer utterance superseded this one while audio was
	// being fetched.
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale || ctx.Err() != nil {
		s.emitEnd(events)
		return
	}

	if events.OnStart != nil {
		events.OnStart()
	}
	if err := s.player.Play(ctx, audio); err != nil {
		s.log.Warn("speech playback failed", zap.Error(err))
		if events.OnError != nil {
			events.OnError(err)
		}
		return
	}
	s.emitEnd(events)
}

func (s *Synthesizer) emitEnd(events ports.SpeechEvents) {
	if events.OnEnd != nil {
		events.OnEnd()
	}
}

func (s *Synthesizer) fetchAudio(ctx context.Context, text string) (io.ReadCloser, error) {
	endpoint := strings.TrimRight(s.cfg.APIBaseURL, "/") + "/speak?model=" + s.cfg.SpeakModel

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request speech audio: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("speech audio request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return resp.Body, nil
}
