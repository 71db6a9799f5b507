// Package model contains domain models passed between layers.
package model

import "time"

// Guest defaults used when no profile can be resolved.
const (
	GuestName        = "Guest"
	FreeSubscription = "free"
)

// Profile is the real user's data as returned by the external profile API.
type Profile struct {
	UserID             string    `json:"user_id"`
	FullName           string    `json:"full_name"`
	PackID             int       `json:"pack_id"`
	TotalScore         int       `json:"total_score"`
	QuestionsAnswered  int       `json:"questions_answered"`
	AveragePace        float64   `json:"average_pace"`
	SubscriptionStatus string    `json:"subscription_status"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// Guest returns the fallback profile used when the user is unknown or the
// lookup failed.
func Guest(userID string, packID int) Profile {
	return Profile{
		UserID:             userID,
		FullName:           GuestName,
		PackID:             packID,
		SubscriptionStatus: FreeSubscription,
	}
}

// DisplayName returns the user's name, falling back to the guest name.
func (p Profile) DisplayName() string {
	if p.FullName == "" || p.FullName == "Unknown Aspirant" {
		return GuestName
	}
	return p.FullName
}

// Subscription returns the subscription status, "free" when unknown.
func (p Profile) Subscription() string {
	if p.SubscriptionStatus == "" {
		return FreeSubscription
	}
	return p.SubscriptionStatus
}
