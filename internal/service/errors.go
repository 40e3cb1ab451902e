package service

import "errors"

// ErrNotConfigured means the integration's singleton row has no usable
// credentials; callers should take a no-op or "feature unavailable" path.
var ErrNotConfigured = errors.New("integration not configured")

// ProviderError wraps a rejection from an external provider (bad
// credentials, quota, malformed input, network failure). It is propagated
// to the caller rather than swallowed, since the caller usually has to
// surface it to the end user.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Provider + ": " + e.Message
	}
	if e.Err != nil {
		return e.Provider + ": " + e.Err.Error()
	}
	return e.Provider + ": provider error"
}

func (e *ProviderError) Unwrap() error { return e.Err }
