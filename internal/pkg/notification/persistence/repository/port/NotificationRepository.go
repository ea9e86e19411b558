package repository

import (
	"context"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
)

// NotificationRepository defines persistence operations for notifications.
// Mutations are ownership-scoped: an id that exists but belongs to a
// different recipient behaves exactly like a missing one.
type NotificationRepository interface {
	// Save persists n and returns it with the generated id and timestamp.
	Save(ctx context.Context, n notification.Notification) (*notification.Notification, error)

	// ListForRecipient returns the recipient's notifications newest first.
	ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]notification.Notification, error)

	// MarkRead flips one owned notification to read and returns it.
	// Returns notification.ErrNotFound when the id is not owned. Idempotent.
	MarkRead(ctx context.Context, id, recipientID string) (*notification.Notification, error)

	// MarkAllRead flips every unread notification of the recipient.
	// Idempotent; no error when nothing was unread.
	MarkAllRead(ctx context.Context, recipientID string) error

	// Delete removes one owned notification. Returns notification.ErrNotFound
	// when the id is not owned.
	Delete(ctx context.Context, id, recipientID string) error
}
