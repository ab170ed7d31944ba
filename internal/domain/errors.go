package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource is returned for an unrecognized source identifier.
	ErrInvalidSource = errors.New("invalid source")
	// ErrFetchDegraded marks a fetch that produced no usable items.
	ErrFetchDegraded = errors.New("fetch degraded")
	// ErrCompletionFailed wraps any failure of the completion backend.
	ErrCompletionFailed = errors.New("completion failed")
)

// ConfigurationError reports a required setting that is missing at construction time.
type ConfigurationError struct {
	Component string
	Field     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is not configured", e.Component, e.Field)
}

// NewConfigurationError is a small helper for adapters.
func NewConfigurationError(component, field string) error {
	return &ConfigurationError{Component: component, Field: field}
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
