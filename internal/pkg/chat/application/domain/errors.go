package chat

import "errors"

// Domain-level errors for direct-message behaviors.
var (
	ErrEmptyContent       = errors.New("chat: message content is required")
	ErrSelfConversation   = errors.New("chat: a conversation needs two distinct participants")
	ErrMissingParticipant = errors.New("chat: participant id is required")
	ErrNotFound           = errors.New("chat: conversation not found")
)
