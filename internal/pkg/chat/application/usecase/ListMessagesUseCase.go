package usecase

import (
	"context"
	"fmt"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesInput scopes a history read to the requesting participant.
type ListMessagesInput struct {
	ConversationID string
	UserID         string
}

// ListMessagesUseCase returns the full message history of a conversation for
// one of its participants. A requester outside the pair gets ErrNotFound, the
// same answer as for a conversation that does not exist.
type ListMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewListMessagesUseCase(repo repository.ChatRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]chat.Message, error) {
	if in.ConversationID == "" || in.UserID == "" {
		return nil, chat.ErrMissingParticipant
	}

	conv, err := uc.Repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		if err == chat.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.UserID) {
		return nil, chat.ErrNotFound
	}

	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
