package usecase

import (
	"context"
	"fmt"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsUseCase returns a user's inbox: every conversation they
// take part in, newest activity first, with their own unread counter resolved.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID string) ([]chat.ConversationView, error) {
	if userID == "" {
		return nil, chat.ErrMissingParticipant
	}
	views, err := uc.Repo.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return views, nil
}
