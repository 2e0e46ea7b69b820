package domain

import "fmt"

// ConfigError marks invalid run parameters detected before any
// network call. It is fatal to the run it belongs to, never recovered
// per-node like provider failures are.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewConfigError builds a ConfigError for a named parameter.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}
