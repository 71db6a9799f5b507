package profile

import "errors"

// Sentinel kinds for profile lookup errors.
var (
	ErrNotFound = errors.New("profile not found upstream")
	ErrUpstream = errors.New("profile upstream failed")
	ErrDisabled = errors.New("profile lookups disabled")
	ErrBadInput = errors.New("invalid lookup input")
)
