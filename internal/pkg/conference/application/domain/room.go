package conference

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("conference not found")
	ErrMissingField      = errors.New("conference requires a leader and a title")
	ErrNotOwner          = errors.New("user does not own this conference")
	ErrInvalidTransition = errors.New("conference status cannot move backwards")
)

// Status is the lifecycle stage of a conference. It only ever moves forward:
// planned, then live, then ended.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusLive    Status = "live"
	StatusEnded   Status = "ended"
)

var statusRank = map[Status]int{
	StatusPlanned: 0,
	StatusLive:    1,
	StatusEnded:   2,
}

// Valid reports whether s is one of the known stages.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether a room may move from s to next. Staying put
// is allowed; going backwards is not.
func (s Status) CanTransition(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// Room is a scheduled or running live conference. RoomID is the opaque
// identifier sockets join; it is distinct from the storage ID.
type Room struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	LeaderID     string    `db:"leader_id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	ThumbnailURL *string   `db:"thumbnail_url"`
	Status       Status    `db:"status"`
	ScheduledAt  time.Time `db:"start_time"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewRoom validates and shapes a conference ready to persist, starting out
// planned.
func NewRoom(roomID, leaderID, title, description string, scheduledAt time.Time) (*Room, error) {
	if leaderID == "" || title == "" {
		return nil, ErrMissingField
	}
	if scheduledAt.IsZero() {
		scheduledAt = time.Now().UTC()
	}
	return &Room{
		RoomID:      roomID,
		LeaderID:    leaderID,
		Title:       title,
		Description: description,
		Status:      StatusPlanned,
		ScheduledAt: scheduledAt,
	}, nil
}

// Transition moves the room to next, rejecting any step backwards in the
// lifecycle.
func (r *Room) Transition(next Status) error {
	if !next.Valid() {
		return ErrInvalidTransition
	}
	if !r.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	r.Status = next
	return nil
}

// IsActive reports whether viewers may still join.
func (r *Room) IsActive() bool {
	return r.Status != StatusEnded
}
