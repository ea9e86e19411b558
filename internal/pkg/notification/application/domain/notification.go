package notification

import (
	"errors"
	"time"
)

// Type enumerates the social actions that produce a notification.
type Type string

const (
	TypeFollow      Type = "FOLLOW"
	TypeLike        Type = "LIKE"
	TypePostLike    Type = "POST_LIKE"
	TypePostComment Type = "POST_COMMENT"
	TypeReelLike    Type = "REEL_LIKE"
	TypeReelComment Type = "REEL_COMMENT"
	TypeMessage     Type = "MESSAGE"
	TypeNewPost     Type = "NEW_POST"
	TypeSystem      Type = "SYSTEM"
)

// Valid reports whether t is one of the enumerated types.
func (t Type) Valid() bool {
	switch t {
	case TypeFollow, TypeLike, TypePostLike, TypePostComment,
		TypeReelLike, TypeReelComment, TypeMessage, TypeNewPost, TypeSystem:
		return true
	}
	return false
}

// ErrNotFound covers both an absent notification and one owned by a
// different recipient; callers cannot tell the two apart.
var ErrNotFound = errors.New("notification: not found")

// Notification is the persisted record of one delivery. Its only mutation
// after creation is the one-way unread -> read flip; deletion is terminal.
type Notification struct {
	ID          string         `db:"id"`
	RecipientID string         `db:"recipient_id"`
	SenderID    *string        `db:"sender_id"`
	Type        Type           `db:"type"`
	Title       string         `db:"title"`
	Message     string         `db:"message"`
	Data        map[string]any `db:"data"`
	IsRead      bool           `db:"is_read"`
	CreatedAt   time.Time      `db:"created_at"`
}

// MarkRead flips the record to read. Already-read records stay read.
func (n *Notification) MarkRead() {
	n.IsRead = true
}
