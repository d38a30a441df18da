package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError means the backend credential is missing or unusable.
// It is terminal: once observed, every screen renders a configuration-error
// state instead of its content.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// BackendError is any failure from a streaming or structured-completion
// call. It stays local to the transcript entry that triggered it.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("backend error: %s", e.Message)
	}
	return fmt.Sprintf("backend error (%s): %s", e.Op, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ValidationError means a structured review response was malformed or
// missing required fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// CapabilityError means an optional platform capability (speech capture,
// speech output) is unavailable. Features degrade with a notice; screens
// keep working.
type CapabilityError struct {
	Capability string
	Reason     string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Capability, e.Reason)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsCapability reports whether err is (or wraps) a CapabilityError.
func IsCapability(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

// IsCredential reports whether err indicates a missing or rejected backend
// credential. ConfigurationError always qualifies; a BackendError qualifies
// when its message smells like an authentication problem.
func IsCredential(err error) bool {
	if err == nil {
		return false
	}
	if IsConfiguration(err) {
		return true
	}
	var be *BackendError
	if !errors.As(err, &be) {
		return false
	}
	msg := strings.ToLower(be.Message)
	for _, marker := range []string{"api key", "api_key", "credential", "unauthenticated", "unauthorized", "permission denied"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
