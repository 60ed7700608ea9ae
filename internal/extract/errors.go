package extract

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a missing or rejected credential. It is not
// retryable without operator action.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "API configuration error: " + e.Reason + ". Make sure API_KEY is set in the environment or in config.json."
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UpstreamError carries the provider's own message for any other failure.
// Callers may retry by issuing the search again.
type UpstreamError struct {
	Code    int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("provider request failed (status %d)", e.Code)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// mentionsAPIKey matches the provider messages for absent or invalid keys,
// e.g. "API key not valid. Please pass a valid API key.".
func mentionsAPIKey(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "api key") || strings.Contains(lower, "api_key")
}
