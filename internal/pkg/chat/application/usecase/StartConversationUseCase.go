package usecase

import (
	"context"
	"fmt"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/port"
)

// StartConversationInput identifies the two people to connect. Order does not
// matter; the pair is normalized before hitting storage.
type StartConversationInput struct {
	UserID       string
	TargetUserID string
}

// StartConversationUseCase opens (or finds) the single direct-message thread
// between two users.
type StartConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewStartConversationUseCase(repo repository.ChatRepository) *StartConversationUseCase {
	return &StartConversationUseCase{Repo: repo}
}

// Execute returns the conversation for the pair, creating it on first
// contact. Calling it again with the participants swapped yields the same
// record.
func (uc *StartConversationUseCase) Execute(ctx context.Context, in StartConversationInput) (*chat.Conversation, error) {
	low, high, err := chat.NormalizePair(in.UserID, in.TargetUserID)
	if err != nil {
		return nil, err
	}
	conv, err := uc.Repo.GetOrCreateConversation(ctx, low, high)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
