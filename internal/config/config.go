package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the app.
type Config struct {
	Gemini   GeminiConfig
	Deepgram DeepgramConfig
	Audio    AudioConfig
	Voice    VoiceConfig
	Profile  ProfileConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type DeepgramConfig struct {
	APIKey      string
	APIBaseURL  string
	ListenModel string
	SpeakModel  string
	Language    string
	SmartFormat bool
	HTTPTimeout time.Duration
}

type AudioConfig struct {
	RecorderCommand string
	PlayerCommand   string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
}

type VoiceConfig struct {
	AutoStartDelay time.Duration
}

type ProfileConfig struct {
	Path string
}

// Load resolves configuration from environment variables and sensible
// defaults. A missing Gemini key is not an error here; the caller
// decides how to degrade.
func Load() (Config, error) {
	profilePath := strings.TrimSpace(os.Getenv("COLDPITCH_PROFILE_FILE"))
	if profilePath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			profilePath = filepath.Join(dir, "coldpitch", "profile.json")
		}
	}

	cfg := Config{
		Gemini: GeminiConfig{
			APIKey: firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
			Model:  envOrDefault("COLDPITCH_GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Deepgram: DeepgramConfig{
			APIKey:      strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
			APIBaseURL:  envOrDefault("DEEPGRAM_API_BASE", "https://api.deepgram.com/v1"),
			ListenModel: envOrDefault("DEEPGRAM_MODEL", "nova-2"),
			SpeakModel:  envOrDefault("DEEPGRAM_SPEAK_MODEL", "aura-asteria-en"),
			Language:    strings.TrimSpace(os.Getenv("DEEPGRAM_LANGUAGE")),
			SmartFormat: envOrDefaultBool("DEEPGRAM_SMART_FORMAT", true),
			HTTPTimeout: time.Duration(envOrDefaultInt("DEEPGRAM_HTTP_TIMEOUT_MS", 30000)) * time.Millisecond,
		},
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("COLDPITCH_FFMPEG_COMMAND", "ffmpeg"),
			PlayerCommand:   envOrDefault("COLDPITCH_FFPLAY_COMMAND", "ffplay"),
			InputFormat:     envOrDefault("COLDPITCH_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("COLDPITCH_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("COLDPITCH_SAMPLE_RATE", 16000),
			Channels:        envOrDefaultInt("COLDPITCH_CHANNELS", 1),
		},
		Voice: VoiceConfig{
			AutoStartDelay: time.Duration(envOrDefaultInt("COLDPITCH_AUTOSTART_DELAY_MS", 200)) * time.Millisecond,
		},
		Profile: ProfileConfig{
			Path: profilePath,
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Deepgram.HTTPTimeout <= 0 {
		cfg.Deepgram.HTTPTimeout = 30 * time.Second
	}
	if cfg.Voice.AutoStartDelay < 0 {
		cfg.Voice.AutoStartDelay = 200 * time.Millisecond
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
