package chat

import "time"

// Conversation is a direct-message thread between exactly two participants.
// The pair is stored normalized (low < high lexicographically) so one record
// exists per unordered pair regardless of who opened the thread.
type Conversation struct {
	ID              string    `db:"id"`
	ParticipantLow  string    `db:"participant_low"`
	ParticipantHigh string    `db:"participant_high"`
	LastMessageID   *string   `db:"last_message_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// NormalizePair orders two participant ids into their canonical (low, high)
// form. Both ids must be present and distinct.
func NormalizePair(a, b string) (string, string, error) {
	if a == "" || b == "" {
		return "", "", ErrMissingParticipant
	}
	if a == b {
		return "", "", ErrSelfConversation
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}

// Participants returns both participant ids.
func (c *Conversation) Participants() [2]string {
	return [2]string{c.ParticipantLow, c.ParticipantHigh}
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.ParticipantLow || userID == c.ParticipantHigh
}

// Other returns the participant that is not userID. Callers are expected to
// have checked membership first.
func (c *Conversation) Other(userID string) string {
	if userID == c.ParticipantLow {
		return c.ParticipantHigh
	}
	return c.ParticipantLow
}

// ConversationView is a conversation annotated for one specific viewer: the
// unread counter resolved for that viewer (0 when no counter row exists) and
// the last message, when any.
type ConversationView struct {
	Conversation
	UnreadCount int      `db:"unread_count"`
	LastMessage *Message `db:"-"`
}
