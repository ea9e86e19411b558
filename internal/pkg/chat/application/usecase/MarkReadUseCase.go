package usecase

import (
	"context"
	"fmt"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/port"
)

// MarkReadInput names the conversation and the reader.
type MarkReadInput struct {
	ConversationID string
	UserID         string
}

// MarkReadUseCase acknowledges a conversation for one participant: their
// unread counter drops to zero and they join the seen-set of every message.
// Safe to repeat; a second call changes nothing.
type MarkReadUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkReadUseCase(repo repository.ChatRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) error {
	if in.ConversationID == "" || in.UserID == "" {
		return chat.ErrMissingParticipant
	}
	if err := uc.Repo.MarkRead(ctx, in.ConversationID, in.UserID); err != nil {
		if err == chat.ErrNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
