package chat

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// previewLimit is the longest notification body produced from a message;
// longer contents are cut at previewCut runes and suffixed with an ellipsis.
const (
	previewLimit = 50
	previewCut   = 47
)

// Message is an immutable entry in a conversation. SeenBy holds the
// participant ids that have acknowledged it; the sender is always included at
// creation time.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Content        string    `db:"content"`
	SeenBy         []string  `db:"-"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and shapes a message ready to persist.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, ErrMissingParticipant
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		SeenBy:         []string{senderID},
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// SeenByUser reports whether userID already acknowledged the message.
func (m *Message) SeenByUser(userID string) bool {
	return lo.Contains(m.SeenBy, userID)
}

// Preview returns the message content shaped for a notification body.
func (m *Message) Preview() string {
	runes := []rune(m.Content)
	if len(runes) <= previewLimit {
		return m.Content
	}
	return string(runes[:previewCut]) + "..."
}
