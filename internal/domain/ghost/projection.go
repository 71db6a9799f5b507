package ghost

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/okian/ghostboard/internal/domain/types"
)

// Progress returns the elapsed fraction of the activity window at now,
// clamped to [0, 1].
func (e *Engine) Progress(now time.Time) float64 {
	local := now.In(e.loc)
	hour := float64(local.Hour()) +
		float64(local.Minute())/60 +
		float64(local.Second())/3600
	return clamp((hour-e.startHour)/e.windowHours, 0, 1)
}

// DailyLuck returns one signed variance term per ghost for the calendar day
// of now. The terms come from a generator seeded only by the date, drawn in
// cohort order, so every engine agrees on them for a given day.
func (e *Engine) DailyLuck(n int, now time.Time) []float64 {
	r := newRand(DailyKey(now.In(e.loc)))
	return lo.Times(n, func(_ int) float64 {
		return (r.Float()*2 - 1) * MaxLuck
	})
}

// DailyScores projects every ghost's score at now. An empty cohort yields
// an empty, non-nil slice.
func (e *Engine) DailyScores(cohort []types.Ghost, now time.Time) []types.Entry {
	progress := e.Progress(now)
	luck := e.DailyLuck(len(cohort), now)
	return lo.Map(cohort, func(g types.Ghost, i int) types.Entry {
		score := Project(g.Skill, luck[i], progress)
		return types.Entry{
			Name:              g.Name,
			Initials:          g.Initials,
			Score:             score,
			QuestionsAnswered: score / ScoreUnit,
			Pace:              g.Pace,
			IsBot:             true,
			Skill:             g.Skill,
		}
	})
}

// Project computes a score from a skill on the 0-100 scale, a daily luck
// term and window progress. The result is a multiple of ScoreUnit in
// [0, MaxScore] and is non-decreasing in progress.
func Project(skill int, luck, progress float64) int {
	performance := clamp(float64(skill)/SkillScaleMax+luck, minPerformance, maxPerformance)
	raw := int(math.Floor(MaxScore * clamp(progress, 0, 1) * performance))
	raw = lo.Clamp(raw, 0, MaxScore)
	return Round10(raw)
}

// Round10 rounds a non-negative score half up to the nearest ScoreUnit.
func Round10(score int) int {
	return (score + ScoreUnit/2) / ScoreUnit * ScoreUnit
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
