package usecase

import (
	"context"
	"fmt"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/port"
)

// UpdateStatusInput names the room, the caller and the target stage.
type UpdateStatusInput struct {
	RoomID   string
	LeaderID string
	Status   conference.Status
}

// UpdateStatusUseCase advances a conference through its lifecycle. Only the
// owning leader may move it, and only forward: a room that ended stays ended.
type UpdateStatusUseCase struct {
	Repo repository.ConferenceRepository
}

func NewUpdateStatusUseCase(repo repository.ConferenceRepository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, in UpdateStatusInput) (*conference.Room, error) {
	if !in.Status.Valid() {
		return nil, conference.ErrInvalidTransition
	}

	room, err := uc.Repo.FindByRoomID(ctx, in.RoomID)
	if err != nil {
		if err == conference.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if room.LeaderID != in.LeaderID {
		return nil, conference.ErrNotOwner
	}
	if err := room.Transition(in.Status); err != nil {
		return nil, err
	}

	updated, err := uc.Repo.UpdateStatus(ctx, in.RoomID, in.LeaderID, in.Status)
	if err != nil {
		if err == conference.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return updated, nil
}
