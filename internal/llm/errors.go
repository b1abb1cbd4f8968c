package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCredential is the configuration error returned when no API credential is
// configured. It is detected before any network call.
var ErrNoCredential = errors.New("API key is missing")

// ErrEmptyResponse is returned when the provider answers with no usable content.
var ErrEmptyResponse = errors.New("no response from AI")

// ProviderError wraps a network or provider failure.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports provider output that does not match the expected schema.
// The output is never repaired locally.
type ParseError struct {
	Raw        string
	Err        error
	Violations []string
}

func (e *ParseError) Error() string {
	if len(e.Violations) > 0 {
		return "parse provider response: " + strings.Join(e.Violations, "; ")
	}
	return fmt.Sprintf("parse provider response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err stems from missing configuration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoCredential)
}
