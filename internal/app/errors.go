package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrUserNotFound = errors.New("user not on board")
	ErrEngine       = errors.New("ghost engine failed")
)
