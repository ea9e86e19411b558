package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
)

type memConferenceRepo struct {
	mu      sync.Mutex
	seq     int
	byRoom  map[string]*conference.Room
	viewers map[string]map[string]bool
}

func newMemConferenceRepo() *memConferenceRepo {
	return &memConferenceRepo{
		byRoom:  make(map[string]*conference.Room),
		viewers: make(map[string]map[string]bool),
	}
}

func (r *memConferenceRepo) Save(ctx context.Context, room conference.Room) (*conference.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	room.ID = fmt.Sprintf("conf-%d", r.seq)
	stored := room
	r.byRoom[room.RoomID] = &stored
	return &room, nil
}

func (r *memConferenceRepo) FindByRoomID(ctx context.Context, roomID string) (*conference.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.byRoom[roomID]
	if !ok {
		return nil, conference.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *memConferenceRepo) ListActive(ctx context.Context) ([]conference.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []conference.Room
	for _, room := range r.byRoom {
		if room.IsActive() {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *memConferenceRepo) UpdateStatus(ctx context.Context, roomID, leaderID string, status conference.Status) (*conference.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.byRoom[roomID]
	if !ok || room.LeaderID != leaderID {
		return nil, conference.ErrNotFound
	}
	room.Status = status
	copied := *room
	return &copied, nil
}

func (r *memConferenceRepo) AddViewer(ctx context.Context, conferenceID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewers[conferenceID] == nil {
		r.viewers[conferenceID] = make(map[string]bool)
	}
	r.viewers[conferenceID][userID] = true
	return nil
}

func (r *memConferenceRepo) ViewerCount(ctx context.Context, conferenceID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.viewers[conferenceID]), nil
}

func TestCreateConference_StartsPlannedWithFreshRoomID(t *testing.T) {
	repo := newMemConferenceRepo()
	uc := NewCreateConferenceUseCase(repo)

	first, err := uc.Execute(context.Background(), CreateConferenceInput{
		LeaderID: "leader-1", Title: "Evening service",
	})
	require.NoError(t, err)
	require.Equal(t, conference.StatusPlanned, first.Status)
	require.NotEmpty(t, first.RoomID)

	second, err := uc.Execute(context.Background(), CreateConferenceInput{
		LeaderID: "leader-1", Title: "Morning prayer", ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEqual(t, first.RoomID, second.RoomID)

	_, err = uc.Execute(context.Background(), CreateConferenceInput{LeaderID: "leader-1"})
	require.ErrorIs(t, err, conference.ErrMissingField)
}

func TestUpdateStatus_MonotonicAndLeaderOwned(t *testing.T) {
	repo := newMemConferenceRepo()
	created, err := NewCreateConferenceUseCase(repo).Execute(context.Background(), CreateConferenceInput{
		LeaderID: "leader-1", Title: "Evening service",
	})
	require.NoError(t, err)

	uc := NewUpdateStatusUseCase(repo)

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: created.RoomID, LeaderID: "someone-else", Status: conference.StatusLive,
	})
	require.ErrorIs(t, err, conference.ErrNotOwner)

	live, err := uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: created.RoomID, LeaderID: "leader-1", Status: conference.StatusLive,
	})
	require.NoError(t, err)
	require.Equal(t, conference.StatusLive, live.Status)

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: created.RoomID, LeaderID: "leader-1", Status: conference.StatusPlanned,
	})
	require.ErrorIs(t, err, conference.ErrInvalidTransition)

	ended, err := uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: created.RoomID, LeaderID: "leader-1", Status: conference.StatusEnded,
	})
	require.NoError(t, err)
	require.Equal(t, conference.StatusEnded, ended.Status)

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: created.RoomID, LeaderID: "leader-1", Status: conference.StatusLive,
	})
	require.ErrorIs(t, err, conference.ErrInvalidTransition)

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		RoomID: "missing", LeaderID: "leader-1", Status: conference.StatusLive,
	})
	require.ErrorIs(t, err, conference.ErrNotFound)
}

func TestListActive_ExcludesEnded(t *testing.T) {
	repo := newMemConferenceRepo()
	create := NewCreateConferenceUseCase(repo)

	running, err := create.Execute(context.Background(), CreateConferenceInput{LeaderID: "leader-1", Title: "Running"})
	require.NoError(t, err)
	finished, err := create.Execute(context.Background(), CreateConferenceInput{LeaderID: "leader-1", Title: "Finished"})
	require.NoError(t, err)

	_, err = NewUpdateStatusUseCase(repo).Execute(context.Background(), UpdateStatusInput{
		RoomID: finished.RoomID, LeaderID: "leader-1", Status: conference.StatusEnded,
	})
	require.NoError(t, err)

	active, err := NewListActiveConferencesUseCase(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, running.RoomID, active[0].RoomID)
}

func TestGetConference_ByRoomID(t *testing.T) {
	repo := newMemConferenceRepo()
	created, err := NewCreateConferenceUseCase(repo).Execute(context.Background(), CreateConferenceInput{
		LeaderID: "leader-1", Title: "Evening service",
	})
	require.NoError(t, err)

	uc := NewGetConferenceUseCase(repo)
	got, err := uc.Execute(context.Background(), created.RoomID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = uc.Execute(context.Background(), "missing")
	require.ErrorIs(t, err, conference.ErrNotFound)

	_, err = uc.Execute(context.Background(), "")
	require.ErrorIs(t, err, conference.ErrNotFound)
}
