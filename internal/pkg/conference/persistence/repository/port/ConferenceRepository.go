package repository

import (
	"context"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
)

// ConferenceRepository defines persistence operations for live conferences.
// Lookups miss with conference.ErrNotFound.
type ConferenceRepository interface {
	// Save persists a new conference and returns it with generated ids.
	Save(ctx context.Context, room conference.Room) (*conference.Room, error)

	// FindByRoomID resolves the conference behind a socket room id.
	FindByRoomID(ctx context.Context, roomID string) (*conference.Room, error)

	// ListActive returns planned and live conferences, soonest first.
	ListActive(ctx context.Context) ([]conference.Room, error)

	// UpdateStatus moves the conference to status. The write carries the
	// leader id so ownership is enforced in the same statement.
	UpdateStatus(ctx context.Context, roomID, leaderID string, status conference.Status) (*conference.Room, error)

	// AddViewer records that a user joined the conference. Idempotent.
	AddViewer(ctx context.Context, conferenceID, userID string) error

	// ViewerCount returns how many distinct users have joined.
	ViewerCount(ctx context.Context, conferenceID string) (int, error)
}
