package repository

import (
	"context"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the direct-message
// domain. Participant pairs are always passed normalized (low < high).
//
// AppendMessage must be atomic with respect to unread counters: the
// per-participant increment happens at the storage layer, never as an
// application-level read-modify-write, so concurrent sends on one
// conversation cannot lose updates.
type ChatRepository interface {
	// GetOrCreateConversation returns the single conversation for the pair,
	// creating it with zeroed unread counters when absent.
	GetOrCreateConversation(ctx context.Context, low, high string) (*chat.Conversation, error)

	// FindConversation returns the conversation or chat.ErrNotFound.
	FindConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)

	// ListConversationsForUser returns the user's conversations newest-updated
	// first, each annotated with the unread count resolved for that user.
	ListConversationsForUser(ctx context.Context, userID string) ([]chat.ConversationView, error)

	// AppendMessage persists m, marks it seen by its sender, increments the
	// unread counter of every participant except the sender and advances the
	// conversation's last-message reference, all in one transaction. The
	// stored message (with generated id) is returned.
	AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// ListMessages returns the conversation's messages in chronological
	// order, seen-sets included.
	ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error)

	// MarkRead zeroes the user's unread counter and adds the user to the
	// seen-set of every message not already containing it. Idempotent.
	MarkRead(ctx context.Context, conversationID, userID string) error
}
