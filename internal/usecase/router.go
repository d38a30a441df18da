package usecase

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
	"github.com/timi-adekoya/ColdPitch/internal/ports"
)

// Router owns the current view and the credential gate. Navigation goes
// through a fixed transition table; the gate trips once and never
// clears for the life of the process.
type Router struct {
	sink   ports.EventSink
	logger *zap.Logger

	mu                sync.Mutex
	mode              domain.AppMode
	credentialMissing bool
}

func NewRouter(sink ports.EventSink, logger *zap.Logger) *Router {
	return &Router{
		sink:   sink,
		logger: logger,
		mode:   domain.ModeHome,
	}
}

// Mode returns the current view.
func (r *Router) Mode() domain.AppMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// CredentialMissing reports whether the gate has tripped.
func (r *Router) CredentialMissing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.credentialMissing
}

// Trip marks the backend credential as unusable. Emits to the sink only
// on the first call.
func (r *Router) Trip() {
	r.mu.Lock()
	already := r.credentialMissing
	r.credentialMissing = true
	r.mu.Unlock()

	if !already {
		r.logger.Warn("backend credential missing or rejected")
		r.sink.CredentialMissing()
	}
}

// NavigateTo moves to the target view if the transition is legal.
func (r *Router) NavigateTo(target domain.AppMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target == r.mode {
		return nil
	}
	if !transitionAllowed(r.mode, target) {
		return &domain.ValidationError{Reason: fmt.Sprintf("cannot move from %s to %s", r.mode, target)}
	}
	r.mode = target
	r.sink.ModeChanged(target)
	return nil
}

// Home is reachable from everywhere; the rest follow the flows of the
// two features plus the settings overlay.
func transitionAllowed(from, to domain.AppMode) bool {
	if to == domain.ModeHome {
		return true
	}
	switch from {
	case domain.ModeHome:
		return to == domain.ModeScenarioList || to == domain.ModeInterviewSetup || to == domain.ModeSettings
	case domain.ModeScenarioList:
		return to == domain.ModeNetworkingChat || to == domain.ModeNetworkingSettings || to == domain.ModeSettings
	case domain.ModeNetworkingChat:
		return to == domain.ModeScenarioList || to == domain.ModeNetworkingSettings
	case domain.ModeNetworkingSettings:
		return to == domain.ModeScenarioList || to == domain.ModeNetworkingChat
	case domain.ModeInterviewSetup:
		return to == domain.ModeInterviewCall || to == domain.ModeSettings
	case domain.ModeInterviewCall:
		return to == domain.ModeInterviewReview
	case domain.ModeInterviewReview:
		return to == domain.ModeInterviewSetup
	case domain.ModeSettings:
		return to == domain.ModeScenarioList || to == domain.ModeInterviewSetup
	default:
		return false
	}
}
