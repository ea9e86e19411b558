package usecase

import (
	"context"
	"fmt"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/port"
)

// GetConferenceUseCase resolves a conference by its socket room id.
type GetConferenceUseCase struct {
	Repo repository.ConferenceRepository
}

func NewGetConferenceUseCase(repo repository.ConferenceRepository) *GetConferenceUseCase {
	return &GetConferenceUseCase{Repo: repo}
}

func (uc *GetConferenceUseCase) Execute(ctx context.Context, roomID string) (*conference.Room, error) {
	if roomID == "" {
		return nil, conference.ErrNotFound
	}
	room, err := uc.Repo.FindByRoomID(ctx, roomID)
	if err != nil {
		if err == conference.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return room, nil
}
