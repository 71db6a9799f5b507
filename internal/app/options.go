package service

import (
	"time"

	"github.com/okian/ghostboard/internal/adapters/profile"
	"github.com/okian/ghostboard/internal/adapters/repository"
	"github.com/okian/ghostboard/internal/domain/ghost"
	"github.com/okian/ghostboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCohortSize sets the number of ghosts on every board.
func WithCohortSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cohortSize = n
		}
	}
}

// WithDefaultPack sets the pack used when a profile has none.
func WithDefaultPack(packID int) Option {
	return func(s *Service) {
		if packID > 0 {
			s.defaultPack = packID
		}
	}
}

// WithLocation sets the zone for the activity window, dates and ISO weeks.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWindow sets the daily activity window. Windows that cross midnight
// are ignored.
func WithWindow(startHour, hours float64) Option {
	return func(s *Service) {
		if ghost.ValidWindow(startHour, hours) {
			s.startHour = startHour
			s.windowHours = hours
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithProfileStore sets the profile cache.
func WithProfileStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithProfileFetcher sets the upstream profile source.
func WithProfileFetcher(f profile.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithRosterFetcher sets the upstream source of real ghost names.
func WithRosterFetcher(f profile.RosterFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.rosters = f
		}
	}
}
