package repository

import "context"

// UserSummary is the slice of a user profile the delivery core needs when
// shaping notifications and message payloads.
type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

// UserDirectory is the read-only boundary to the externally owned user store.
// The core never writes through it.
type UserDirectory interface {
	// FindSummary returns the user's display summary, or nil when unknown.
	FindSummary(ctx context.Context, userID string) (*UserSummary, error)

	// DeviceTokens returns the user's registered mobile push tokens.
	DeviceTokens(ctx context.Context, userID string) ([]string, error)

	// FollowerIDs returns the ids of users following the given leader.
	FollowerIDs(ctx context.Context, leaderID string) ([]string, error)
}
