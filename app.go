package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/bootstrap"
	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/prompts"
	"github.com/timi-adekoya/ColdPitch/internal/usecase"
)

const (
	eventTranscript = "coldpitch:transcript"
	eventVoice      = "coldpitch:voice"
	eventMode       = "coldpitch:mode"
	eventBanner     = "coldpitch:banner"
	eventNotice     = "coldpitch:notice"
	eventCredential = "coldpitch:credential"
)

// App is the Wails application root. It implements ports.EventSink and
// exposes the bound methods the frontend calls.
type App struct {
	ctx context.Context

	logger   *zap.Logger
	services bootstrap.Services
	bootErr  error

	mu   sync.Mutex
	turn *usecase.TurnController
}

func NewApp(logger *zap.Logger) *App {
	return &App{logger: logger}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(ctx, a, a.logger)
	if err != nil {
		a.bootErr = err
		a.logger.Error("startup failed", zap.Error(err))
		a.Banner("Startup failed: " + err.Error())
		return
	}
	a.services = services
	if services.SpeechNotice != "" {
		a.Notice(services.SpeechNotice)
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.teardownTurn()
	if a.services.Backend != nil {
		_ = a.services.Backend.Close()
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.services.Router == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// ScenarioView is the scenario catalog entry shape bound to the UI.
type ScenarioView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AvatarEmoji string `json:"avatarEmoji"`
}

// GetScenarios returns the networking scenario catalog.
func (a *App) GetScenarios() []ScenarioView {
	views := make([]ScenarioView, 0, 4)
	for _, s := range prompts.Scenarios() {
		views = append(views, ScenarioView{
			ID:          string(s.ID),
			Name:        s.Name,
			Description: s.Description,
			AvatarEmoji: s.AvatarEmoji,
		})
	}
	return views
}

// GetInterviewRoles returns the selectable interview roles.
func (a *App) GetInterviewRoles() []string {
	roles := make([]string, 0, len(domain.AllInterviewRoles))
	for _, r := range domain.AllInterviewRoles {
		roles = append(roles, string(r))
	}
	return roles
}

// GetProfile returns the stored user profile.
func (a *App) GetProfile() domain.Profile {
	if err := a.requireReady(); err != nil {
		return domain.Profile{}
	}
	return a.services.Profiles.Load()
}

// SaveProfile persists the user profile.
func (a *App) SaveProfile(p domain.Profile) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.services.Profiles.Save(p); err != nil {
		a.logger.Error("failed to save profile", zap.Error(err))
		return err
	}
	a.Notice("Profile saved.")
	return nil
}

// Navigate moves the app to the target view.
func (a *App) Navigate(target string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	mode := domain.AppMode(target)
	if mode == domain.ModeHome {
		a.resetAll()
	}
	return a.services.Router.NavigateTo(mode)
}

// GetMode returns the current view.
func (a *App) GetMode() string {
	if err := a.requireReady(); err != nil {
		return string(domain.ModeHome)
	}
	return string(a.services.Router.Mode())
}

// GetCredentialMissing reports whether the backend credential gate has
// tripped.
func (a *App) GetCredentialMissing() bool {
	if err := a.requireReady(); err != nil {
		return true
	}
	return a.services.Router.CredentialMissing()
}

// StartNetworking opens a networking simulation for the scenario and
// moves to the chat view.
func (a *App) StartNetworking(scenarioID string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	profile := a.services.Profiles.Load()
	if err := a.services.Networking.Start(domain.ScenarioID(scenarioID), profile); err != nil {
		a.Banner("Failed to initialize networking chat session. Ensure API key is valid.")
		return err
	}
	return a.services.Router.NavigateTo(domain.ModeNetworkingChat)
}

// SendNetworkingMessage delivers one user message and blocks until the
// reply has streamed in.
func (a *App) SendNetworkingMessage(text string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.services.Networking.Send(a.ctx, text)
}

// RequestNetworkingReview asks for the performance review of the
// running simulation.
func (a *App) RequestNetworkingReview() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.services.Networking.RequestReview(a.ctx); err != nil {
		a.Banner("Failed to generate networking review. Please try again.")
		return err
	}
	return nil
}

// GetNetworkingPlaceholder returns the input hint for the running
// scenario.
func (a *App) GetNetworkingPlaceholder() string {
	if err := a.requireReady(); err != nil {
		return ""
	}
	return a.services.Networking.Placeholder()
}

// GetNetworkingAwaiting reports whether a networking request is in
// flight.
func (a *App) GetNetworkingAwaiting() bool {
	if err := a.requireReady(); err != nil {
		return false
	}
	return a.services.Networking.Awaiting()
}

// GetNetworkingReviewed reports whether the simulation has been graded.
func (a *App) GetNetworkingReviewed() bool {
	if err := a.requireReady(); err != nil {
		return false
	}
	return a.services.Networking.Reviewed()
}

// ResetNetworking discards the running simulation and returns to the
// scenario list.
func (a *App) ResetNetworking() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.services.Networking.Reset()
	return a.services.Router.NavigateTo(domain.ModeScenarioList)
}

// GetTranscript returns the entries of whichever session the current
// view shows.
func (a *App) GetTranscript() []domain.Entry {
	if err := a.requireReady(); err != nil {
		return nil
	}
	switch a.services.Router.Mode() {
	case domain.ModeInterviewCall, domain.ModeInterviewReview:
		return a.services.Interview.Transcript()
	default:
		return a.services.Networking.Transcript()
	}
}

// StartInterview configures and opens a mock interview, then moves to
// the call view and schedules the interviewer's opening line.
func (a *App) StartInterview(role string, company string, isInternship bool) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	settings := domain.InterviewSettings{
		Role:         domain.InterviewRole(role),
		Company:      company,
		IsInternship: isInternship,
	}
	profile := a.services.Profiles.Load()
	if err := a.services.Interview.Start(settings, profile); err != nil {
		a.Banner("Failed to initialize interview. Ensure API key is valid.")
		return err
	}
	if err := a.services.Router.NavigateTo(domain.ModeInterviewCall); err != nil {
		return err
	}

	a.teardownTurn()
	if a.services.Recognizer != nil && a.services.Synthesizer != nil {
		turn := usecase.NewTurnController(
			a.services.Recognizer,
			a.services.Synthesizer,
			a,
			a.logger,
			a.dispatchUtterance,
			a.kickoffInterview,
			a.services.Interview.Awaiting,
			a.services.Config.Voice.AutoStartDelay,
		)
		a.mu.Lock()
		a.turn = turn
		a.mu.Unlock()
		turn.AutoStart()
	} else {
		// Text-only fallback still lets the interviewer open the call.
		time.AfterFunc(a.services.Config.Voice.AutoStartDelay, a.kickoffInterview)
	}
	return nil
}

// GetInterviewSettings returns the running interview's configuration.
func (a *App) GetInterviewSettings() domain.InterviewSettings {
	if err := a.requireReady(); err != nil {
		return domain.InterviewSettings{}
	}
	return a.services.Interview.Settings()
}

// SendInterviewMessage delivers a typed candidate message, for use when
// voice is unavailable.
func (a *App) SendInterviewMessage(text string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.services.Interview.Send(a.ctx, text); err != nil {
		return err
	}
	a.speakLatestReply()
	return nil
}

// ToggleMic starts or stops listening on the voice call.
func (a *App) ToggleMic() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.mu.Lock()
	turn := a.turn
	a.mu.Unlock()
	if turn == nil {
		notice := a.services.SpeechNotice
		if notice == "" {
			notice = "Voice features are unavailable."
		}
		a.Notice(notice)
		return &domain.CapabilityError{Capability: "voice call", Reason: notice}
	}
	return turn.ToggleMic(a.ctx)
}

// GetMicDisabled reports whether the mic toggle should be inert.
func (a *App) GetMicDisabled() bool {
	a.mu.Lock()
	turn := a.turn
	a.mu.Unlock()
	if turn == nil {
		return false
	}
	return turn.MicDisabled()
}

// GetVoiceState returns the current voice phase.
func (a *App) GetVoiceState() string {
	a.mu.Lock()
	turn := a.turn
	a.mu.Unlock()
	if turn == nil {
		return string(domain.VoiceIdle)
	}
	return string(turn.State())
}

// EndInterview closes the call, requests the review, and moves to the
// review view.
func (a *App) EndInterview() (domain.InterviewReviewData, error) {
	if err := a.requireReady(); err != nil {
		return domain.InterviewReviewData{}, err
	}
	a.teardownTurn()

	data, err := a.services.Interview.EndAndReview(a.ctx)
	// The review view is shown even when grading failed, mirroring the
	// error state the user can retry from.
	if navErr := a.services.Router.NavigateTo(domain.ModeInterviewReview); navErr != nil {
		a.logger.Warn("could not enter review view", zap.Error(navErr))
	}
	if err != nil {
		a.Banner("Failed to generate interview review. Please try again.")
		return domain.InterviewReviewData{}, err
	}
	return data, nil
}

// GetInterviewReview returns the accepted interview review, if any.
func (a *App) GetInterviewReview() (domain.InterviewReviewData, bool) {
	if err := a.requireReady(); err != nil {
		return domain.InterviewReviewData{}, false
	}
	return a.services.Interview.Review()
}

// CopyInterviewReview puts a plain-text rendering of the review on the
// clipboard.
func (a *App) CopyInterviewReview() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	data, ok := a.services.Interview.Review()
	if !ok {
		return &domain.ValidationError{Reason: "no review to copy"}
	}
	if err := runtime.ClipboardSetText(a.ctx, formatInterviewReview(data)); err != nil {
		a.logger.Warn("clipboard write failed", zap.Error(err))
		return err
	}
	a.Notice("Review copied to clipboard.")
	return nil
}

// dispatchUtterance sends a recognized utterance into the interview and
// speaks the reply. Runs on a recognition callback goroutine.
func (a *App) dispatchUtterance(text string) {
	if err := a.services.Interview.Send(a.ctx, text); err != nil {
		a.logger.Warn("failed to deliver utterance", zap.Error(err))
		return
	}
	a.speakLatestReply()
}

// kickoffInterview makes the interviewer speak first.
func (a *App) kickoffInterview() {
	if err := a.services.Interview.Kickoff(a.ctx); err != nil {
		a.logger.Warn("failed to open interview", zap.Error(err))
		return
	}
	a.speakLatestReply()
}

func (a *App) speakLatestReply() {
	text, ok := a.services.Interview.LastAssistantText()
	if !ok {
		return
	}
	a.mu.Lock()
	turn := a.turn
	a.mu.Unlock()
	if turn != nil {
		turn.OnAssistantUtterance(a.ctx, text)
	}
}

func (a *App) teardownTurn() {
	a.mu.Lock()
	turn := a.turn
	a.turn = nil
	a.mu.Unlock()
	if turn != nil {
		turn.Teardown()
	}
}

func (a *App) resetAll() {
	a.teardownTurn()
	if a.services.Networking != nil {
		a.services.Networking.Reset()
	}
	if a.services.Interview != nil {
		a.services.Interview.Reset()
	}
}

// TranscriptChanged emits the full transcript snapshot to the frontend.
func (a *App) TranscriptChanged(entries []domain.Entry) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTranscript, entries)
}

// VoiceStateChanged emits voice phase updates.
func (a *App) VoiceStateChanged(state domain.VoiceState) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventVoice, string(state))
}

// ModeChanged emits view changes.
func (a *App) ModeChanged(mode domain.AppMode) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventMode, string(mode))
}

// Banner emits a prominent error banner.
func (a *App) Banner(message string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventBanner, message)
}

// Notice emits a transient informational message.
func (a *App) Notice(message string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventNotice, message)
}

// CredentialMissing tells the frontend to show the missing-key state.
func (a *App) CredentialMissing() {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventCredential, true)
}

func formatInterviewReview(data domain.InterviewReviewData) string {
	var b strings.Builder
	b.WriteString("Interview Review\n\n")
	b.WriteString("Overall Assessment:\n")
	b.WriteString(data.OverallAssessment)
	b.WriteString("\n\nStrengths:\n")
	for _, s := range data.Strengths {
		b.WriteString("- " + s + "\n")
	}
	b.WriteString("\nAreas for Improvement:\n")
	for _, s := range data.AreasForImprovement {
		b.WriteString("- " + s + "\n")
	}
	b.WriteString("\nSuggested Focus:\n")
	for _, s := range data.SuggestedFocus {
		b.WriteString("- " + s + "\n")
	}
	b.WriteString(fmt.Sprintf("\nFinal Rating: %.1f/10\n", data.FinalRating))
	return b.String()
}
