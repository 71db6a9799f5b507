package leaderboard

import (
	"github.com/samber/lo"

	"github.com/okian/ghostboard/internal/domain/ghost"
	"github.com/okian/ghostboard/internal/domain/types"
)

// Dashboard analytics constants.
const (
	// AspirantPool is the headline population "faster than" is scaled to.
	AspirantPool = 5683

	// DistributionBuckets is the number of bars in the rank distribution.
	DistributionBuckets = 5

	// QuestionsGoal is the number of questions in a full day.
	QuestionsGoal = ghost.MaxScore / ghost.ScoreUnit

	// True potential closes this share of the gap to MaxScore, and is at
	// least minPotentialGain above the current score.
	potentialGapShare = 0.45
	minPotentialGain  = 40
)

// Analyze derives the dashboard analytics for a user ranked rank of total
// with score points and questions answered today.
func Analyze(rank, total, score, questions int) types.Analytics {
	a := types.Analytics{QuestionsGoal: QuestionsGoal}

	if total > 0 && rank > 0 && rank <= total {
		below := total - rank
		a.FasterThan = below * AspirantPool / total
		a.DistributionBucket = lo.Clamp(below*DistributionBuckets/total, 0, DistributionBuckets-1)
	}

	a.PotentialScore, a.PointsLost = Potential(score)
	a.QuestionsToday = lo.Clamp(questions, 0, QuestionsGoal)
	return a
}

// Potential returns the score the user could reach today and the points
// between it and score. Scores at or above MaxScore have no gap.
func Potential(score int) (potential, lost int) {
	score = max(score, 0)
	if score >= ghost.MaxScore {
		return score, 0
	}
	gap := ghost.MaxScore - score
	potential = score + int(float64(gap)*potentialGapShare)
	potential = max(potential, score+minPotentialGain)
	potential = min(potential, ghost.MaxScore)
	return potential, potential - score
}
