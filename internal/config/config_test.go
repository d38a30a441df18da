package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("COLDPITCH_GEMINI_MODEL", "")
	t.Setenv("COLDPITCH_AUTOSTART_DELAY_MS", "")
	t.Setenv("COLDPITCH_PROFILE_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Gemini.APIKey != "" {
		t.Fatalf("expected empty gemini key")
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model: %q", cfg.Gemini.Model)
	}
	if cfg.Deepgram.APIBaseURL != "https://api.deepgram.com/v1" {
		t.Fatalf("unexpected deepgram base: %q", cfg.Deepgram.APIBaseURL)
	}
	if cfg.Deepgram.ListenModel != "nova-2" || cfg.Deepgram.SpeakModel != "aura-asteria-en" {
		t.Fatalf("unexpected deepgram models: %+v", cfg.Deepgram)
	}
	if cfg.Audio.RecorderCommand != "ffmpeg" || cfg.Audio.PlayerCommand != "ffplay" {
		t.Fatalf("unexpected audio commands: %+v", cfg.Audio)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.Voice.AutoStartDelay != 200*time.Millisecond {
		t.Fatalf("unexpected autostart delay: %s", cfg.Voice.AutoStartDelay)
	}
}

func TestLoadRespectsOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gkey")
	t.Setenv("COLDPITCH_GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("DEEPGRAM_API_KEY", "dkey")
	t.Setenv("DEEPGRAM_API_BASE", "https://example.com/v1")
	t.Setenv("DEEPGRAM_MODEL", "nova-3")
	t.Setenv("DEEPGRAM_SPEAK_MODEL", "aura-orion-en")
	t.Setenv("DEEPGRAM_LANGUAGE", "en")
	t.Setenv("DEEPGRAM_SMART_FORMAT", "false")
	t.Setenv("DEEPGRAM_HTTP_TIMEOUT_MS", "5000")
	t.Setenv("COLDPITCH_FFMPEG_COMMAND", "my-ffmpeg")
	t.Setenv("COLDPITCH_FFPLAY_COMMAND", "my-ffplay")
	t.Setenv("COLDPITCH_AUDIO_INPUT_FORMAT", "alsa")
	t.Setenv("COLDPITCH_AUDIO_INPUT_DEVICE", "mic0")
	t.Setenv("COLDPITCH_SAMPLE_RATE", "22050")
	t.Setenv("COLDPITCH_CHANNELS", "2")
	t.Setenv("COLDPITCH_AUTOSTART_DELAY_MS", "50")
	t.Setenv("COLDPITCH_PROFILE_FILE", "/tmp/p.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Gemini.APIKey != "gkey" || cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("unexpected gemini config: %+v", cfg.Gemini)
	}
	if cfg.Deepgram.APIKey != "dkey" || cfg.Deepgram.APIBaseURL != "https://example.com/v1" {
		t.Fatalf("unexpected deepgram config: %+v", cfg.Deepgram)
	}
	if cfg.Deepgram.ListenModel != "nova-3" || cfg.Deepgram.SpeakModel != "aura-orion-en" || cfg.Deepgram.SmartFormat {
		t.Fatalf("unexpected deepgram models: %+v", cfg.Deepgram)
	}
	if cfg.Deepgram.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Deepgram.HTTPTimeout)
	}
	if cfg.Audio.RecorderCommand != "my-ffmpeg" || cfg.Audio.PlayerCommand != "my-ffplay" {
		t.Fatalf("unexpected audio commands: %+v", cfg.Audio)
	}
	if cfg.Audio.InputFormat != "alsa" || cfg.Audio.InputDevice != "mic0" {
		t.Fatalf("unexpected audio input: %+v", cfg.Audio)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Audio.Channels != 2 {
		t.Fatalf("unexpected sample/channels: %+v", cfg.Audio)
	}
	if cfg.Voice.AutoStartDelay != 50*time.Millisecond {
		t.Fatalf("unexpected autostart delay: %s", cfg.Voice.AutoStartDelay)
	}
	if cfg.Profile.Path != "/tmp/p.json" {
		t.Fatalf("unexpected profile path: %q", cfg.Profile.Path)
	}
}

func TestLoadFallsBackToLegacyKeyVariable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "legacy" {
		t.Fatalf("expected legacy key, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadInvalidNumericValuesFallback(t *testing.T) {
	t.Setenv("COLDPITCH_SAMPLE_RATE", "bad")
	t.Setenv("COLDPITCH_CHANNELS", "-1")
	t.Setenv("DEEPGRAM_HTTP_TIMEOUT_MS", "0")
	t.Setenv("COLDPITCH_AUTOSTART_DELAY_MS", "-5")
	t.Setenv("DEEPGRAM_SMART_FORMAT", "not-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Audio.SampleRate != 16000 {
		t.Fatalf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Fatalf("expected default channels, got %d", cfg.Audio.Channels)
	}
	if cfg.Deepgram.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.Deepgram.HTTPTimeout)
	}
	if cfg.Voice.AutoStartDelay != 200*time.Millisecond {
		t.Fatalf("expected default autostart delay, got %s", cfg.Voice.AutoStartDelay)
	}
	if !cfg.Deepgram.SmartFormat {
		t.Fatalf("expected default smart format true")
	}
}
