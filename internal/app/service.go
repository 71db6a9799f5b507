// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ghostboard/internal/adapters/profile"
	"github.com/okian/ghostboard/internal/adapters/repository"
	"github.com/okian/ghostboard/internal/domain/ghost"
	"github.com/okian/ghostboard/internal/domain/leaderboard"
	"github.com/okian/ghostboard/internal/domain/model"
	"github.com/okian/ghostboard/internal/domain/types"
	"github.com/okian/ghostboard/pkg/logger"
	"github.com/okian/ghostboard/pkg/metrics"
)

const (
	defaultPackID = 10

	// maxCachedRosters bounds the per-week roster cache; it is cleared when full.
	maxCachedRosters = 256
)

// Service builds ghost leaderboards for real users.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	store   repository.Store
	fetcher profile.Fetcher
	rosters profile.RosterFetcher

	// Configuration
	cohortSize  int
	defaultPack int
	loc         *time.Location
	startHour   float64
	windowHours float64
	clock       func() time.Time

	// State
	started      bool
	boardsServed atomic.Int64

	// Roster names by seed key; failed lookups are not cached.
	rosterMu    sync.Mutex
	rosterCache map[string][]string

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cohortSize:  ghost.DefaultCohortSize,
		defaultPack: defaultPackID,
		loc:         time.UTC,
		startHour:   8,
		windowHours: 14,
		clock:       time.Now,
		rosterCache: make(map[string][]string),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory profile cache")
	}
	if s.fetcher == nil {
		s.logger.Warn(ctx, "no profile upstream configured, every user is a guest")
	}

	s.started = true
	s.logger.Info(ctx, "ghost leaderboard service started",
		logger.Int("cohortSize", s.cohortSize),
		logger.Int("defaultPack", s.defaultPack),
		logger.String("timezone", s.loc.String()),
		logger.Float64("windowStartHour", s.startHour),
		logger.Float64("windowHours", s.windowHours),
	)

	return nil
}

// Stop releases resources held by the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing profile cache", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "ghost leaderboard service stopped")
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) engine(now time.Time, packID int) *ghost.Engine {
	return ghost.NewWeekly(now, packID,
		ghost.WithLocation(s.loc),
		ghost.WithWindow(s.startHour, s.windowHours),
	)
}

// generate runs the engine and turns a contract panic into ErrEngine.
func (s *Service) generate(ctx context.Context, e *ghost.Engine, packID int, now time.Time) (scores []types.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordContractViolation()
			err = fmt.Errorf("%w: %v", ErrEngine, r)
		}
	}()

	return e.DailyScores(s.cohort(ctx, e, packID), now), nil
}

// cohort generates the engine's ghosts and names them from the pack's
// roster when one is available.
func (s *Service) cohort(ctx context.Context, e *ghost.Engine, packID int) []types.Ghost {
	start := time.Now()
	cohort := e.GenerateCohort(s.cohortSize)
	metrics.RecordCohortGenerated(time.Since(start).Seconds())

	if roster := s.roster(ctx, e.SeedKey(), packID); len(roster) > 0 {
		cohort = ghost.Hydrate(cohort, roster)
	}
	return cohort
}

// roster returns the pack's ghost names for the engine's week. On any
// upstream failure it returns nil and the generated names are used.
func (s *Service) roster(ctx context.Context, seedKey string, packID int) []string {
	if s.rosters == nil {
		return nil
	}

	s.rosterMu.Lock()
	names, ok := s.rosterCache[seedKey]
	s.rosterMu.Unlock()
	if ok {
		return names
	}

	names, err := s.rosters.Roster(ctx, packID)
	if err != nil {
		s.log().Warn(ctx, "ghost roster lookup failed, using generated names",
			logger.Int("packID", packID), logger.Error(err))
		return nil
	}

	s.rosterMu.Lock()
	if len(s.rosterCache) >= maxCachedRosters {
		clear(s.rosterCache)
	}
	s.rosterCache[seedKey] = names
	s.rosterMu.Unlock()
	return names
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// Board returns the user's leaderboard for the current instant. Entries are
// trimmed to limit (0 means all); rank, score and percentile always refer to
// the full board.
func (s *Service) Board(ctx context.Context, userID string, limit int) (types.Board, error) {
	if !s.isStarted() {
		return types.Board{}, ErrNotStarted
	}
	if limit < 0 {
		return types.Board{}, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	p := s.resolveProfile(ctx, userID)
	now := s.clock()
	e := s.engine(now, p.PackID)

	scores, err := s.generate(ctx, e, p.PackID, now)
	if err != nil {
		s.logger.Error(ctx, "generating cohort", logger.String("seedKey", e.SeedKey()), logger.Error(err))
		return types.Board{}, err
	}

	res := leaderboard.Assemble(scores, leaderboard.User{
		Name:              p.DisplayName(),
		Score:             p.TotalScore,
		QuestionsAnswered: p.QuestionsAnswered,
		Pace:              int(math.Round(p.AveragePace)),
	})

	s.boardsServed.Add(1)
	metrics.RecordBoardAssembled(len(res.Entries), res.Percentile, e.Progress(now))
	s.logger.Debug(ctx, "board assembled",
		logger.String("userID", userID),
		logger.String("seedKey", e.SeedKey()),
		logger.Int("userRank", res.UserRank),
	)

	return types.Board{
		SeedKey:            e.SeedKey(),
		PackID:             p.PackID,
		Entries:            leaderboard.Top(res.Entries, limit),
		Total:              len(res.Entries),
		UserRank:           res.UserRank,
		UserScore:          res.UserScore,
		Percentile:         res.Percentile,
		SubscriptionStatus: p.Subscription(),
		Analytics:          leaderboard.Analyze(res.UserRank, len(res.Entries), res.UserScore, p.QuestionsAnswered),
	}, nil
}

// Rank returns the user's own row on their board.
func (s *Service) Rank(ctx context.Context, userID string) (types.Entry, error) {
	b, err := s.Board(ctx, userID, 0)
	if err != nil {
		return types.Entry{}, err
	}
	entry, ok := b.UserEntry()
	if !ok {
		return types.Entry{}, ErrUserNotFound
	}
	return entry, nil
}

// Cohort returns this week's ghosts for a pack and the key they were seeded
// from. A non-positive packID selects the default pack.
func (s *Service) Cohort(ctx context.Context, packID int) ([]types.Ghost, string) {
	if packID <= 0 {
		packID = s.defaultPack
	}
	e := s.engine(s.clock(), packID)
	return s.cohort(ctx, e, packID), e.SeedKey()
}

// resolveProfile goes cache, then upstream, then guest. It never fails.
func (s *Service) resolveProfile(ctx context.Context, userID string) model.Profile {
	p, ok := s.lookup(ctx, userID)
	if !ok {
		p = model.Guest(userID, s.defaultPack)
	}
	if p.PackID <= 0 {
		p.PackID = s.defaultPack
	}
	return p
}

func (s *Service) lookup(ctx context.Context, userID string) (model.Profile, bool) {
	if userID == "" {
		return model.Profile{}, false
	}

	p, err := s.store.Get(ctx, userID)
	if err == nil {
		return p, true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn(ctx, "profile cache read failed", logger.String("userID", userID), logger.Error(err))
	}

	if s.fetcher == nil {
		return model.Profile{}, false
	}

	p, err = s.fetcher.Fetch(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrNotFound), errors.Is(err, profile.ErrDisabled):
		s.logger.Debug(ctx, "falling back to guest", logger.String("userID", userID), logger.Error(err))
		return model.Profile{}, false
	default:
		s.logger.Warn(ctx, "profile lookup failed", logger.String("userID", userID), logger.Error(err))
		return model.Profile{}, false
	}

	if err := s.store.Put(ctx, p); err != nil {
		s.logger.Warn(ctx, "profile cache write failed", logger.String("userID", userID), logger.Error(err))
	}
	return p, true
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"cohortSize":    s.cohortSize,
		"defaultPackID": s.defaultPack,
		"timezone":      s.loc.String(),
		"boardsServed":  s.boardsServed.Load(),
		"seedKey":       ghost.WeeklyKey(s.clock().In(s.loc), s.defaultPack),
	}

	if s.started {
		stats["cachedProfiles"] = s.store.Count(context.Background())
		stats["profileUpstream"] = s.fetcher != nil
		stats["rosterUpstream"] = s.rosters != nil
	}

	return stats
}
