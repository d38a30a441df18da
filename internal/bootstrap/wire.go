package bootstrap

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/config"
	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/profile"
	"github.com/timi-adekoya/ColdPitch/internal/providers/gemini"
	"github.com/timi-adekoya/ColdPitch/internal/speech"
	"github.com/timi-adekoya/ColdPitch/internal/speech/deepgram"
	"github.com/timi-adekoya/ColdPitch/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Config     config.Config
	Logger     *zap.Logger
	Router     *usecase.Router
	Networking *usecase.NetworkingSimulator
	Interview  *usecase.InterviewSession
	Profiles   *profile.Store

	// Backend is nil when the Gemini key is missing; the router's gate
	// is tripped instead of failing startup.
	Backend *gemini.Client

	// Recognizer and Synthesizer are nil when voice dependencies are
	// unavailable. SpeechNotice carries the reason, for the UI.
	Recognizer   ports.SpeechRecognizer
	Synthesizer  ports.SpeechSynthesizer
	SpeechNotice string

	Rand *rand.Rand
}

// Build wires all backend dependencies for the current runtime. Missing
// credentials degrade features rather than failing the whole app.
func Build(ctx context.Context, eventSink ports.EventSink, logger *zap.Logger) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	router := usecase.NewRouter(eventSink, logger)

	var backend *gemini.Client
	client, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	switch {
	case err == nil:
		backend = client
	case domain.IsConfiguration(err):
		logger.Warn("chat backend disabled", zap.Error(err))
		router.Trip()
	default:
		return Services{}, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var chatBackend ports.ChatBackend
	if backend != nil {
		chatBackend = backend
	}
	networking := usecase.NewNetworkingSimulator(chatBackend, eventSink, logger, router.Trip)
	interview := usecase.NewInterviewSession(chatBackend, eventSink, logger, rng, router.Trip)

	services := Services{
		Config:     cfg,
		Logger:     logger,
		Router:     router,
		Networking: networking,
		Interview:  interview,
		Profiles:   profile.NewStore(cfg.Profile.Path, logger),
		Backend:    backend,
		Rand:       rng,
	}

	mic := speech.NewMic(speech.MicConfig{
		Command:     cfg.Audio.RecorderCommand,
		InputFormat: cfg.Audio.InputFormat,
		InputDevice: cfg.Audio.InputDevice,
		SampleRate:  cfg.Audio.SampleRate,
		Channels:    cfg.Audio.Channels,
	})
	player := speech.NewPlayer(cfg.Audio.PlayerCommand)

	switch {
	case cfg.Deepgram.APIKey == "":
		services.SpeechNotice = "Voice features are disabled: Deepgram API key is not set."
	case mic.Available() != nil:
		services.SpeechNotice = "Voice features are disabled: microphone capture tooling was not found."
	case player.Available() != nil:
		services.SpeechNotice = "Voice features are disabled: audio playback tooling was not found."
	default:
		services.Recognizer = deepgram.NewRecognizer(deepgram.Config{
			APIKey:      cfg.Deepgram.APIKey,
			APIBaseURL:  cfg.Deepgram.APIBaseURL,
			ListenModel: cfg.Deepgram.ListenModel,
			Language:    cfg.Deepgram.Language,
			SmartFormat: cfg.Deepgram.SmartFormat,
			SampleRate:  cfg.Audio.SampleRate,
			Channels:    cfg.Audio.Channels,
		}, mic, logger)
		services.Synthesizer = deepgram.NewSynthesizer(deepgram.SynthConfig{
			APIKey:     cfg.Deepgram.APIKey,
			APIBaseURL: cfg.Deepgram.APIBaseURL,
			SpeakModel: cfg.Deepgram.SpeakModel,
			Timeout:    cfg.Deepgram.HTTPTimeout,
		}, player, logger)
	}

	if services.SpeechNotice != "" {
		logger.Warn("voice features disabled", zap.String("reason", services.SpeechNotice))
	}

	return services, nil
}
