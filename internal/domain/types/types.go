// Package types contains common types used across the application
package types

// Ghost is a generated competitor. Skill is fixed for the lifetime of the
// engine that produced it.
type Ghost struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Skill    int    `json:"skill"`
	Pace     int    `json:"avg_pace"`
}

// Entry represents a leaderboard row
type Entry struct {
	Rank              int    `json:"rank"`
	Name              string `json:"name"`
	Initials          string `json:"initials"`
	Score             int    `json:"score"`
	QuestionsAnswered int    `json:"questions_answered"`
	Pace              int    `json:"avg_pace,omitempty"`
	IsUser            bool   `json:"is_user"`
	IsBot             bool   `json:"is_bot"`

	// Skill is the ghost's hidden baseline; never served.
	Skill int `json:"-"`
}

// Analytics is the dashboard block shown under the board.
type Analytics struct {
	FasterThan         int `json:"faster_than"`
	DistributionBucket int `json:"distribution_bucket"`
	PotentialScore     int `json:"potential_score"`
	PointsLost         int `json:"points_lost"`
	QuestionsToday     int `json:"questions_today"`
	QuestionsGoal      int `json:"questions_goal"`
}

// Board is a fully ranked leaderboard plus the real user's position.
type Board struct {
	SeedKey            string    `json:"seed_key"`
	PackID             int       `json:"pack_id"`
	Entries            []Entry   `json:"entries"`
	Total              int       `json:"total"`
	UserRank           int       `json:"user_rank"`
	UserScore          int       `json:"user_score"`
	Percentile         float64   `json:"percentile"`
	SubscriptionStatus string    `json:"subscription_status"`
	Analytics          Analytics `json:"analytics"`
}

// UserEntry returns the user's row, if present in Entries.
func (b Board) UserEntry() (Entry, bool) {
	for _, e := range b.Entries {
		if e.IsUser {
			return e, true
		}
	}
	return Entry{}, false
}
