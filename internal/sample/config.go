// Package sample renders a ghost board offline, for tuning and eyeballing
// cohorts without running the server.
package sample

import (
	"errors"
	"time"
)

// Config holds the inputs of one sample run.
type Config struct {
	PackID     int       // Pack used for the weekly seed
	Size       int       // Number of ghosts
	At         time.Time // Instant to project scores at
	Location   *time.Location
	UserName   string // Name injected as the real user
	UserScore  int    // Score injected for the real user
	Key        string // Explicit seed key; overrides PackID and At's week
	Verify     bool   // Re-run and check the board is reproducible
	ShowSkills bool   // Print skill next to each ghost
}

// ErrInvalidConfig reports unusable flag values.
var ErrInvalidConfig = errors.New("invalid sample config")

// Validate checks ranges.
func (c Config) Validate() error {
	switch {
	case c.Size < 0:
		return errors.Join(ErrInvalidConfig, errors.New("size must not be negative"))
	case c.PackID <= 0 && c.Key == "":
		return errors.Join(ErrInvalidConfig, errors.New("pack must be positive"))
	case c.UserScore < 0:
		return errors.Join(ErrInvalidConfig, errors.New("score must not be negative"))
	}
	return nil
}
