// Package leaderboard merges the real user into a scored ghost cohort and
// assigns ranks.
package leaderboard

import (
	"slices"

	"github.com/okian/ghostboard/internal/domain/names"
	"github.com/okian/ghostboard/internal/domain/types"
)

// User is the real user's contribution to a board.
type User struct {
	Name              string
	Score             int
	QuestionsAnswered int
	Pace              int
}

// Result is a ranked board and the user's place on it.
type Result struct {
	Entries    []types.Entry
	UserRank   int
	UserScore  int
	Percentile float64
}

// Assemble appends the user after the ghosts, sorts by score descending and
// assigns ranks 1..N. The sort is stable, so on a tie the user ranks below
// every ghost with the same score. The input slice is not modified.
func Assemble(ghosts []types.Entry, user User) Result {
	entries := make([]types.Entry, 0, len(ghosts)+1)
	entries = append(entries, ghosts...)
	entries = append(entries, types.Entry{
		Name:              user.Name,
		Initials:          names.Initials(user.Name),
		Score:             user.Score,
		QuestionsAnswered: user.QuestionsAnswered,
		Pace:              user.Pace,
		IsUser:            true,
	})

	slices.SortStableFunc(entries, func(a, b types.Entry) int {
		return b.Score - a.Score
	})

	res := Result{Entries: entries, UserScore: user.Score}
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].IsUser && res.UserRank == 0 {
			res.UserRank = i + 1
		}
	}
	res.Percentile = Percentile(res.UserRank, len(entries))
	return res
}

// Percentile is the share of the board ranked below rank.
func Percentile(rank, total int) float64 {
	if total <= 0 || rank <= 0 {
		return 0
	}
	return float64(total-rank) / float64(total)
}

// Top returns at most n entries from a ranked list; n <= 0 returns all.
func Top(entries []types.Entry, n int) []types.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
