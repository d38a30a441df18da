package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/prompts"
	"github.com/timi-adekoya/ColdPitch/internal/review"
	"github.com/timi-adekoya/ColdPitch/internal/transcript"
)

const (
	reviewPendingText = "Generating networking performance review..."
	reviewReadyText   = "Here's your performance review:"
	reviewErrorText   = "Error: Could not generate review."
)

// NetworkingSimulator runs one cold-outreach practice chat at a time:
// scenario selection, the live chat itself, and the end-of-session
// review.
type NetworkingSimulator struct {
	backend ports.ChatBackend
	sink    ports.EventSink
	logger  *zap.Logger

	onAuthError func()

	conversation *Conversation
	scenario     prompts.Scenario
	profile      domain.Profile
}

func NewNetworkingSimulator(backend ports.ChatBackend, sink ports.EventSink, logger *zap.Logger, onAuthError func()) *NetworkingSimulator {
	return &NetworkingSimulator{
		backend:     backend,
		sink:        sink,
		logger:      logger,
		onAuthError: onAuthError,
	}
}

// Start opens a fresh chat for the scenario, replacing any previous
// one, and seeds the transcript with the intro line and profile hint.
func (s *NetworkingSimulator) Start(scenarioID domain.ScenarioID, profile domain.Profile) error {
	scenario, ok := prompts.ScenarioByID(scenarioID)
	if !ok {
		return &domain.ValidationError{Reason: fmt.Sprintf("unknown scenario %q", scenarioID)}
	}
	if s.backend == nil {
		if s.onAuthError != nil {
			s.onAuthError()
		}
		return &domain.ConfigurationError{Reason: "chat backend is not configured"}
	}

	session, err := s.backend.OpenSession(scenario.SystemInstruction(profile))
	if err != nil {
		s.logger.Error("failed to open networking chat session", zap.Error(err))
		if domain.IsCredential(err) && s.onAuthError != nil {
			s.onAuthError()
		}
		return err
	}

	s.scenario = scenario
	s.profile = profile
	s.conversation = NewConversation(session, s.sink, s.logger, StreamLive, s.onAuthError)

	intro := fmt.Sprintf("You are now simulating a conversation with: %s.", scenario.Name)
	switch {
	case profile.FullName != "" && profile.UniversityName != "":
		intro += fmt.Sprintf("\nHint: You can introduce yourself as %s from %s.", profile.FullName, profile.UniversityName)
	case profile.FullName != "":
		intro += fmt.Sprintf("\nHint: You can introduce yourself as %s.", profile.FullName)
	}
	intro += "\nHow would you like to start?"
	s.conversation.seed(domain.SenderAssistant, intro)

	s.logger.Info("networking simulation started", zap.String("scenario", string(scenarioID)))
	return nil
}

// Active reports whether a simulation is running.
func (s *NetworkingSimulator) Active() bool {
	return s.conversation != nil
}

// Scenario returns the running scenario.
func (s *NetworkingSimulator) Scenario() prompts.Scenario {
	return s.scenario
}

// Placeholder returns the input hint for the running scenario.
func (s *NetworkingSimulator) Placeholder() string {
	if s.conversation == nil {
		return ""
	}
	return s.scenario.Placeholder(s.profile)
}

// Transcript returns the current chat entries.
func (s *NetworkingSimulator) Transcript() []domain.Entry {
	if s.conversation == nil {
		return nil
	}
	return s.conversation.Transcript()
}

// Awaiting reports whether a send or review request is in flight.
func (s *NetworkingSimulator) Awaiting() bool {
	return s.conversation != nil && s.conversation.Awaiting()
}

// Reviewed reports whether the session has received its review.
func (s *NetworkingSimulator) Reviewed() bool {
	return s.conversation != nil && s.conversation.Frozen()
}

// Send delivers one user message. Rejected while another request runs
// or after the review has landed.
func (s *NetworkingSimulator) Send(ctx context.Context, text string) error {
	if s.conversation == nil {
		return &domain.ValidationError{Reason: "no simulation is running"}
	}
	return s.conversation.Send(ctx, text)
}

// RequestReview asks the backend to grade the conversation so far. It
// needs at least one user turn, claims the same in-flight slot as Send,
// and on success freezes the conversation.
func (s *NetworkingSimulator) RequestReview(ctx context.Context) error {
	if s.conversation == nil {
		return &domain.ValidationError{Reason: "no simulation is running"}
	}
	if !s.conversation.HasUserTurn() {
		return &domain.ValidationError{Reason: "nothing to review yet"}
	}
	if !s.conversation.beginFlight() {
		return &domain.ValidationError{Reason: "another request is in progress"}
	}
	defer s.conversation.endFlight()

	history := s.conversation.Transcript()
	prompt := prompts.ConversationReviewPrompt(history, s.scenario, s.profile)

	placeholderID := s.conversation.newID()
	s.conversation.log.Append(domain.Entry{
		ID:        placeholderID,
		Text:      reviewPendingText,
		Sender:    domain.SenderReviewer,
		Timestamp: s.conversation.now(),
		IsLoading: true,
	})
	s.conversation.publish()

	raw, err := s.backend.StructuredCompletion(ctx, prompt)
	if err == nil {
		var data domain.ReviewData
		if data, err = review.ParseConversation(raw); err == nil {
			s.conversation.log.UpdateLast(transcript.ByID(placeholderID), func(e *domain.Entry) {
				e.Text = reviewReadyText
				e.Review = &data
				e.IsLoading = false
			})
			s.conversation.publish()
			s.conversation.freeze()
			s.logger.Info("networking review generated", zap.Float64("rating", data.Rating))
			return nil
		}
	}

	s.logger.Error("failed to generate networking review", zap.Error(err))
	s.conversation.log.UpdateLast(transcript.ByID(placeholderID), func(e *domain.Entry) {
		e.Text = reviewErrorText
		e.IsLoading = false
		e.IsError = true
	})
	s.conversation.publish()
	if domain.IsCredential(err) && s.onAuthError != nil {
		s.onAuthError()
	}
	return err
}

// Review returns the accepted review, if one has landed.
func (s *NetworkingSimulator) Review() (domain.ReviewData, bool) {
	if s.conversation == nil {
		return domain.ReviewData{}, false
	}
	for _, entry := range s.conversation.Transcript() {
		if entry.Sender == domain.SenderReviewer && entry.Review != nil {
			return *entry.Review, true
		}
	}
	return domain.ReviewData{}, false
}

// Reset discards the running simulation.
func (s *NetworkingSimulator) Reset() {
	s.conversation = nil
	s.scenario = prompts.Scenario{}
	s.profile = domain.Profile{}
	s.sink.TranscriptChanged(nil)
}
