package repository

import "errors"

// Sentinel kinds for profile cache errors.
var (
	ErrNotFound     = errors.New("profile not found")
	ErrInvalidKey   = errors.New("invalid profile key")
	ErrCacheBackend = errors.New("profile cache backend failed")
)
