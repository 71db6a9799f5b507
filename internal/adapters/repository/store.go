// Package repository caches user profiles between upstream lookups.
package repository

import (
	"context"

	"github.com/okian/ghostboard/internal/domain/model"
)

// Store provides read/write access to cached profiles.
type Store interface {
	// Get returns the cached profile for userID.
	// Returns ErrNotFound if the user is unknown or the entry expired.
	Get(ctx context.Context, userID string) (model.Profile, error)

	// Put stores or replaces the profile keyed by its UserID.
	Put(ctx context.Context, p model.Profile) error

	// Count returns the number of profiles currently cached.
	Count(ctx context.Context) int
}
