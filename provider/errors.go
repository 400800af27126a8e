package provider

import "fmt"

// ConfigurationError reports that no usable credential is configured for a
// provider. It is surfaced before any session mutation and blocks submission.
type ConfigurationError struct {
	Provider string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s: no credential configured", e.Provider)
}

// AuthenticationError reports a rejected or missing credential. The
// credential itself is never included in the message.
type AuthenticationError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("provider %s: authentication failed", e.Provider)
}

// Unwrap returns the underlying SDK error.
func (e *AuthenticationError) Unwrap() error { return e.Err }

// NetworkError reports a transport failure. Retryable by the caller at a
// higher level, never retried by the adapter.
type NetworkError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("provider %s: network error: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError reports a vendor-side failure carrying the vendor's message.
type ProviderError struct {
	Provider string
	Message  string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}

// FromStatus normalizes an HTTP status reported by a vendor SDK into the
// typed taxonomy. A zero status means the request never reached the vendor
// and is treated as a transport failure.
func FromStatus(providerID string, status int, err error) error {
	switch {
	case status == 401 || status == 403:
		return &AuthenticationError{Provider: providerID, Err: err}
	case status == 0:
		return &NetworkError{Provider: providerID, Err: err}
	default:
		return &ProviderError{Provider: providerID, Message: err.Error()}
	}
}
