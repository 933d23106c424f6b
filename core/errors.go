package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProfile is returned when a referenced memory profile name
	// does not resolve to a predefined profile.
	ErrUnknownProfile = errors.New("unknown memory profile")

	// ErrUnknownJob is returned when no memory binding exists for a job id.
	ErrUnknownJob = errors.New("no memory binding for job")

	// ErrAlreadyPopulated is returned when restoring from a durable store
	// into a conversation that already holds messages.
	ErrAlreadyPopulated = errors.New("conversation already populated")
)

// ConfigError describes an invalid memory configuration. It is raised at
// binding time, never during view builds, so a misconfigured job fails
// deterministically before any agent is invoked.
type ConfigError struct {
	Field  string
	Reason string
	// Err is an optional underlying sentinel, e.g. ErrUnknownProfile.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid memory settings: %s: %s", e.Field, e.Reason)
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
