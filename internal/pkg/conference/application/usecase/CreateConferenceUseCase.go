package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/port"
)

// CreateConferenceInput carries the data to schedule a conference.
type CreateConferenceInput struct {
	LeaderID     string
	Title        string
	Description  string
	ThumbnailURL *string
	ScheduledAt  time.Time
}

// CreateConferenceUseCase schedules a new conference with a fresh opaque
// room id for sockets to join.
type CreateConferenceUseCase struct {
	Repo repository.ConferenceRepository
}

func NewCreateConferenceUseCase(repo repository.ConferenceRepository) *CreateConferenceUseCase {
	return &CreateConferenceUseCase{Repo: repo}
}

func (uc *CreateConferenceUseCase) Execute(ctx context.Context, in CreateConferenceInput) (*conference.Room, error) {
	room, err := conference.NewRoom(uuid.NewString(), in.LeaderID, in.Title, in.Description, in.ScheduledAt)
	if err != nil {
		return nil, err
	}
	room.ThumbnailURL = in.ThumbnailURL

	saved, err := uc.Repo.Save(ctx, *room)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
