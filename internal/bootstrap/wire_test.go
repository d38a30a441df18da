package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

type recordingSink struct {
	mu              sync.Mutex
	credentialCount int
}

func (s *recordingSink) TranscriptChanged([]domain.Entry)    {}
func (s *recordingSink) VoiceStateChanged(domain.VoiceState) {}
func (s *recordingSink) ModeChanged(domain.AppMode)          {}
func (s *recordingSink) Banner(string)                       {}
func (s *recordingSink) Notice(string)                       {}

func (s *recordingSink) CredentialMissing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentialCount++
}

func (s *recordingSink) credentials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentialCount
}

func clearBackendEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("COLDPITCH_PROFILE_FILE", filepath.Join(t.TempDir(), "profile.json"))
}

func TestBuildWithoutGeminiKeyTripsCredentialGate(t *testing.T) {
	clearBackendEnv(t)

	sink := &recordingSink{}
	services, err := Build(context.Background(), sink, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if services.Backend != nil {
		t.Fatalf("backend should be nil without a key")
	}
	if !services.Router.CredentialMissing() {
		t.Fatalf("credential gate should be tripped")
	}
	if sink.credentials() != 1 {
		t.Fatalf("expected one credential event, got %d", sink.credentials())
	}
	if services.Networking == nil || services.Interview == nil || services.Profiles == nil {
		t.Fatalf("core services must still be wired")
	}
}

func TestBuildWithoutDeepgramKeyDisablesVoice(t *testing.T) {
	clearBackendEnv(t)

	services, err := Build(context.Background(), &recordingSink{}, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if services.Recognizer != nil || services.Synthesizer != nil {
		t.Fatalf("voice ports should be nil without a Deepgram key")
	}
	if !strings.Contains(services.SpeechNotice, "Deepgram API key") {
		t.Fatalf("unexpected notice: %q", services.SpeechNotice)
	}
}

func TestBuildMissingRecorderDisablesVoice(t *testing.T) {
	clearBackendEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-test-key")
	t.Setenv("COLDPITCH_FFMPEG_COMMAND", "definitely-not-a-real-binary")

	services, err := Build(context.Background(), &recordingSink{}, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if services.Recognizer != nil || services.Synthesizer != nil {
		t.Fatalf("voice ports should be nil without capture tooling")
	}
	if !strings.Contains(services.SpeechNotice, "microphone capture") {
		t.Fatalf("unexpected notice: %q", services.SpeechNotice)
	}
}

func TestBuildStartsOnHome(t *testing.T) {
	clearBackendEnv(t)

	services, err := Build(context.Background(), &recordingSink{}, zap.NewNop())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := services.Router.Mode(); got != domain.ModeHome {
		t.Fatalf("expected home mode, got %q", got)
	}
}
