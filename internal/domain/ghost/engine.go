// Package ghost generates seeded cohorts of simulated competitors and
// projects their scores across the daily activity window.
//
// An Engine is a pure function of its seed key: two engines built from the
// same key generate the same cohort, and DailyScores for the same instant
// returns the same scores.
package ghost

import (
	"fmt"
	"time"

	"github.com/okian/ghostboard/internal/domain/names"
	"github.com/okian/ghostboard/internal/domain/rng"
	"github.com/okian/ghostboard/internal/domain/types"
)

// Scoring scale. MaxScore is six daily tests of ten questions at ten points
// each; every projected score is a multiple of ScoreUnit in [0, MaxScore].
const (
	MaxScore      = 600
	ScoreUnit     = 10
	SkillScaleMax = 100
	MinSkill      = 30
	MaxSkill      = 95
	MinPace       = 28
	MaxPace       = 55

	// MaxLuck bounds the signed daily variance added to normalized skill.
	MaxLuck        = 0.10
	minPerformance = 0.05
	maxPerformance = 1.0

	// DefaultCohortSize leaves room for the user in a 50-row board.
	DefaultCohortSize = 49

	defaultStartHour   = 8.0
	defaultWindowHours = 14.0

	// warmupDraws decorrelates neighbouring sum-of-code-point seeds.
	warmupDraws = 3
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// ValidWindow reports whether a window opening at startHour and lasting
// hours fits inside one calendar day.
func ValidWindow(startHour, hours float64) bool {
	return startHour >= 0 && startHour < 24 && hours > 0 && startHour+hours <= 24
}

// WithWindow sets the daily activity window: it opens at startHour (local,
// fractional hours allowed) and lasts hours. Windows that cross midnight are
// ignored.
func WithWindow(startHour, hours float64) Option {
	return func(e *Engine) {
		if ValidWindow(startHour, hours) {
			e.startHour = startHour
			e.windowHours = hours
		}
	}
}

// WithLocation sets the time zone used for hour-of-day, dates and ISO weeks.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// Engine owns one generator and derives one cohort from it.
type Engine struct {
	key         string
	rng         *rng.Rand
	loc         *time.Location
	startHour   float64
	windowHours float64
}

// New creates an engine seeded from an arbitrary seed key.
func New(key string, opts ...Option) *Engine {
	e := &Engine{
		loc:         time.UTC,
		startHour:   defaultStartHour,
		windowHours: defaultWindowHours,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reseed(key)
	return e
}

// NewWeekly creates an engine for the ISO week containing t (in the
// engine's location) and packID.
func NewWeekly(t time.Time, packID int, opts ...Option) *Engine {
	e := New("", opts...)
	e.reseed(WeeklyKey(t.In(e.loc), packID))
	return e
}

func (e *Engine) reseed(key string) {
	e.key = key
	e.rng = newRand(key)
}

func newRand(key string) *rng.Rand {
	r := rng.New(rng.HashKey(key))
	r.Discard(warmupDraws)
	return r
}

// SeedKey returns the key the engine was seeded with.
func (e *Engine) SeedKey() string { return e.key }

// Location returns the engine's time zone.
func (e *Engine) Location() *time.Location { return e.loc }

// GenerateCohort draws size ghosts from the engine's generator. It panics
// on a negative size.
func (e *Engine) GenerateCohort(size int) []types.Ghost {
	if size < 0 {
		panic(fmt.Sprintf("ghost: invalid cohort size %d", size))
	}
	cohort := make([]types.Ghost, 0, size)
	for i := 0; i < size; i++ {
		name := names.Generate(e.rng)
		cohort = append(cohort, types.Ghost{
			Name:     name,
			Initials: names.Initials(name),
			Skill:    e.rng.Range(MinSkill, MaxSkill),
			Pace:     e.rng.Range(MinPace, MaxPace),
		})
	}
	return cohort
}
