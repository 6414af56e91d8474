package meetme

import "errors"

var (
	ErrAlreadyInitialized    = errors.New("meetme control has already been initialised")
	ErrNotInitialized        = errors.New("meetme control has not been initialised, call meetme.Initialize first")
	ErrCapabilityUnavailable = errors.New("meetme capability unavailable")
	ErrVersionMismatch       = errors.New("switch version does not support conference bridges")
	ErrMalformedResponse     = errors.New("malformed conference list response")
)

// InitError wraps whatever stopped the capability probe. It matches both
// ErrCapabilityUnavailable and its cause under errors.Is.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return "meetme capability unavailable: " + e.Cause.Error()
}

func (e *InitError) Unwrap() []error {
	return []error{ErrCapabilityUnavailable, e.Cause}
}
