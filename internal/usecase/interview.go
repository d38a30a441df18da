package usecase

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
	"github.com/timi-adekoya/ColdPitch/internal/prompts"
	"github.com/timi-adekoya/ColdPitch/internal/review"
)

const interviewEndedText = "Interview ended by user."

// InterviewSession runs one voice mock interview: persona setup, the
// spoken exchange, and the structured end-of-interview review.
type InterviewSession struct {
	backend ports.ChatBackend
	sink    ports.EventSink
	logger  *zap.Logger
	rng     *rand.Rand

	onAuthError func()

	conversation *Conversation
	settings     domain.InterviewSettings
	profile      domain.Profile
	reviewData   *domain.InterviewReviewData
}

func NewInterviewSession(backend ports.ChatBackend, sink ports.EventSink, logger *zap.Logger, rng *rand.Rand, onAuthError func()) *InterviewSession {
	return &InterviewSession{
		backend:     backend,
		sink:        sink,
		logger:      logger,
		rng:         rng,
		onAuthError: onAuthError,
	}
}

// Start configures the interviewer persona and opens the chat. The
// interviewer gets a random first name when none is supplied.
func (s *InterviewSession) Start(settings domain.InterviewSettings, profile domain.Profile) error {
	if strings.TrimSpace(settings.Company) == "" {
		return &domain.ValidationError{Reason: "company is required"}
	}
	if settings.Role == "" {
		return &domain.ValidationError{Reason: "role is required"}
	}
	if settings.InterviewerName == "" {
		settings.InterviewerName = prompts.PickInterviewerName(s.rng)
	}
	if s.backend == nil {
		if s.onAuthError != nil {
			s.onAuthError()
		}
		return &domain.ConfigurationError{Reason: "chat backend is not configured"}
	}

	session, err := s.backend.OpenSession(prompts.InterviewerSystemInstruction(settings, profile))
	if err != nil {
		s.logger.Error("failed to open interview chat session", zap.Error(err))
		if domain.IsCredential(err) && s.onAuthError != nil {
			s.onAuthError()
		}
		return err
	}

	s.settings = settings
	s.profile = profile
	s.reviewData = nil
	s.conversation = NewConversation(session, s.sink, s.logger, StreamWhole, s.onAuthError)

	s.logger.Info("interview started",
		zap.String("role", string(settings.Role)),
		zap.String("company", settings.Company),
		zap.String("interviewer", settings.InterviewerName),
	)
	return nil
}

// Active reports whether an interview is running.
func (s *InterviewSession) Active() bool {
	return s.conversation != nil
}

// Settings returns the running interview's configuration, including the
// assigned interviewer name.
func (s *InterviewSession) Settings() domain.InterviewSettings {
	return s.settings
}

// Transcript returns the current entries.
func (s *InterviewSession) Transcript() []domain.Entry {
	if s.conversation == nil {
		return nil
	}
	return s.conversation.Transcript()
}

// Awaiting reports whether a request is in flight.
func (s *InterviewSession) Awaiting() bool {
	return s.conversation != nil && s.conversation.Awaiting()
}

// Send delivers one candidate utterance and waits for the full reply.
func (s *InterviewSession) Send(ctx context.Context, text string) error {
	if s.conversation == nil {
		return &domain.ValidationError{Reason: "no interview is running"}
	}
	return s.conversation.Send(ctx, text)
}

// Kickoff makes the interviewer speak first. Nothing lands in the
// transcript for the triggering turn.
func (s *InterviewSession) Kickoff(ctx context.Context) error {
	if s.conversation == nil {
		return &domain.ValidationError{Reason: "no interview is running"}
	}
	return s.conversation.Kickoff(ctx)
}

// LastAssistantText returns the interviewer's newest line, for the
// voice layer to speak.
func (s *InterviewSession) LastAssistantText() (string, bool) {
	if s.conversation == nil {
		return "", false
	}
	return s.conversation.LastAssistantText()
}

// EndAndReview closes the interview and asks the backend to grade the
// transcript. The closing marker entry is appended first but kept out
// of the graded history.
func (s *InterviewSession) EndAndReview(ctx context.Context) (domain.InterviewReviewData, error) {
	if s.conversation == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "no interview is running"}
	}
	if s.reviewData != nil {
		return *s.reviewData, nil
	}
	if len(s.conversation.Transcript()) == 0 {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "nothing to review yet"}
	}
	if !s.conversation.beginFlight() {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "another request is in progress"}
	}
	defer s.conversation.endFlight()

	history := s.conversation.Transcript()
	s.conversation.seed(domain.SenderSystem, interviewEndedText)

	raw, err := s.backend.StructuredCompletion(ctx, prompts.InterviewReviewPrompt(history, s.settings, s.profile))
	if err == nil {
		var data domain.InterviewReviewData
		if data, err = review.ParseInterview(raw); err == nil {
			s.reviewData = &data
			s.conversation.freeze()
			s.logger.Info("interview review generated", zap.Float64("rating", data.FinalRating))
			return data, nil
		}
	}

	s.logger.Error("failed to generate interview review", zap.Error(err))
	if domain.IsCredential(err) && s.onAuthError != nil {
		s.onAuthError()
	}
	return domain.InterviewReviewData{}, err
}

// Review returns the accepted review, if one has landed.
func (s *InterviewSession) Review() (domain.InterviewReviewData, bool) {
	if s.reviewData == nil {
		return domain.InterviewReviewData{}, false
	}
	return *s.reviewData, true
}

// Reset discards the running interview.
func (s *InterviewSession) Reset() {
	s.conversation = nil
	s.settings = domain.InterviewSettings{}
	s.profile = domain.Profile{}
	s.reviewData = nil
	s.sink.TranscriptChanged(nil)
}
