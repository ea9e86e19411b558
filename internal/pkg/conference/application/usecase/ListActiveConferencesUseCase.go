package usecase

import (
	"context"
	"fmt"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/port"
)

// ListActiveConferencesUseCase returns every conference a viewer could still
// join, soonest first.
type ListActiveConferencesUseCase struct {
	Repo repository.ConferenceRepository
}

func NewListActiveConferencesUseCase(repo repository.ConferenceRepository) *ListActiveConferencesUseCase {
	return &ListActiveConferencesUseCase{Repo: repo}
}

func (uc *ListActiveConferencesUseCase) Execute(ctx context.Context) ([]conference.Room, error) {
	rooms, err := uc.Repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rooms, nil
}
