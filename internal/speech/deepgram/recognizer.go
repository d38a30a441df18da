// Package deepgram implements speech recognition and synthesis on the
// Deepgram APIs: live transcription over a websocket and Aura
// text-to-speech over REST.
package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/speech"
)

// Config controls the Deepgram connection.
type Config struct {
	APIKey      string
	APIBaseURL  string
	ListenModel string
	Language    string
	SmartFormat bool
	SampleRate  int
	Channels    int
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.deepgram.com/v1"
	}
	if c.ListenModel == "" {
		c.ListenModel = "nova-2"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.Channels <= 0 {
		c.Channels = 1
	}
}

// Recognizer captures one spoken utterance per Start call. Final
// transcript fragments are aggregated and delivered through OnFinal
// exactly once, either when the service marks the speech final or when
// the caller stops listening.
type Recognizer struct {
	cfg Config
	mic *speech.Mic
	log *zap.Logger

	mu     sync.Mutex
	active *listenSession
}

func NewRecognizer(cfg Config, mic *speech.Mic, log *zap.Logger) *Recognizer {
	cfg.applyDefaults()
	return &Recognizer{cfg: cfg, mic: mic, log: log}
}

// Start opens the microphone and the live transcription socket. Only
// one session runs at a time; starting over a live session stops it
// first.
func (r *Recognizer) Start(ctx context.Context, events ports.RecognitionEvents) error {
	if strings.TrimSpace(r.cfg.APIKey) == "" {
		return &domain.CapabilityError{Capability: "speech recognition", Reason: "Deepgram API key is not set"}
	}
	if err := r.mic.Available(); err != nil {
		return err
	}

	r.Stop()

	wsURL, err := listenURL(r.cfg)
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)

	mic, err := r.mic.Open(sessionCtx)
	if err != nil {
		cancel()
		return err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+r.cfg.APIKey)
	conn, _, err := websocket.DefaultDialer.DialContext(sessionCtx, wsURL, headers)
	if err != nil {
		_ = mic.Stop()
		cancel()
		return fmt.Errorf("failed to connect to transcription service: %w", err)
	}

	session := &listenSession{
		conn:   conn,
		mic:    mic,
		cancel: cancel,
		events: events,
		log:    r.log,
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	r.active = session
	r.mu.Unlock()

	session.wg.Add(2)
	go session.pumpAudio()
	go session.readResults()
	go func() {
		session.wg.Wait()
		session.finish()
		close(session.done)
		_ = conn.Close()
		cancel()
	}()

	return nil
}

// Stop ends the current session, if any, and blocks until its final
// transcript has been delivered.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	session := r.active
	r.active = nil
	r.mu.Unlock()

	if session != nil {
		session.stop()
	}
}

type listenSession struct {
	conn   *websocket.Conn
	mic    *speech.MicStream
	cancel context.CancelFunc
	events ports.RecognitionEvents
	log    *zap.Logger

	wg   sync.WaitGroup
	done chan struct{}

	mu       sync.Mutex
	finals   []string
	err      error
	finished bool

	stopOnce sync.Once
}

func (s *listenSession) stop() {
	s.stopOnce.Do(func() {
		// Stopping the mic ends the audio pump, which sends the
		// close-stream message so remaining results flush before the
		// socket drops.
		_ = s.mic.Stop()
	})
	<-s.done
}

func (s *listenSession) pumpAudio() {
	defer s.wg.Done()

	buf := make([]byte, 4096)
	for {
		n, err := s.mic.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if werr := s.conn.WriteMessage(websocket.BinaryMessage, chunk); werr != nil {
				s.setErr(fmt.Errorf("failed to send audio: %w", werr))
				return
			}
		}
		if err != nil {
			break
		}
	}

	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`)); err != nil {
		s.setErr(fmt.Errorf("failed to close audio stream: %w", err))
	}
}

func (s *listenSession) readResults() {
	defer s.wg.Done()

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !isNormalClose(err) {
				s.setErr(fmt.Errorf("failed to read transcription event: %w", err))
			}
			return
		}

		var response listenResponse
		if err := json.Unmarshal(payload, &response); err != nil {
			continue
		}

		if strings.EqualFold(response.Type, "Error") {
			message := strings.TrimSpace(response.Message)
			if message == "" {
				message = "transcription service returned an unknown error"
			}
			s.setErr(errors.New(message))
			return
		}

		transcript := extractTranscript(response)
		if transcript != "" && (response.IsFinal || response.SpeechFinal) {
			s.mu.Lock()
			s.finals = append(s.finals, transcript)
			s.mu.Unlock()
		}

		if response.SpeechFinal {
			// End of utterance. Shut the mic down; the pump will close
			// the stream and the service will hang up.
			go s.stopOnce.Do(func() { _ = s.mic.Stop() })
		}
	}
}

// finish delivers the aggregated transcript or the terminal error,
// exactly once.
func (s *listenSession) finish() {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	text := strings.TrimSpace(strings.Join(s.finals, " "))
	err := s.err
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("speech recognition failed", zap.Error(err))
		if s.events.OnError != nil {
			s.events.OnError(err)
		}
		return
	}
	if text != "" && s.events.OnFinal != nil {
		s.events.OnFinal(text)
	}
}

func (s *listenSession) setErr(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func isNormalClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}

type listenResponse struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`

	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func extractTranscript(response listenResponse) string {
	if len(response.Channel.Alternatives) > 0 {
		return strings.TrimSpace(response.Channel.Alternatives[0].Transcript)
	}
	return ""
}

func listenURL(cfg Config) (string, error) {
	base := strings.TrimSpace(cfg.APIBaseURL)
	if strings.HasPrefix(base, "https://") {
		base = "wss://" + strings.TrimPrefix(base, "https://")
	} else if strings.HasPrefix(base, "http://") {
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	base = strings.TrimRight(base, "/")

	u, err := url.Parse(base + "/listen")
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}

	query := u.Query()
	query.Set("model", cfg.ListenModel)
	query.Set("encoding", "linear16")
	query.Set("sample_rate", fmt.Sprintf("%d", cfg.SampleRate))
	query.Set("channels", fmt.Sprintf("%d", cfg.Channels))
	query.Set("interim_results", "false")
	query.Set("smart_format", fmt.Sprintf("%t", cfg.SmartFormat))
	if cfg.Language != "" {
		query.Set("language", cfg.Language)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}
