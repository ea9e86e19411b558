package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
	gwport "github.com/HarichndR/Faithconnect/internal/pkg/notification/gateway/port"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// memNotificationRepo is an in-memory NotificationRepository. failFor lets a
// test make persistence fail (or panic) for chosen recipients.
type memNotificationRepo struct {
	mu       sync.Mutex
	seq      int
	byID     map[string]*notification.Notification
	failFor  map[string]error
	panicFor map[string]bool
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{
		byID:     make(map[string]*notification.Notification),
		failFor:  make(map[string]error),
		panicFor: make(map[string]bool),
	}
}

func (r *memNotificationRepo) Save(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panicFor[n.RecipientID] {
		panic("repo blew up")
	}
	if err := r.failFor[n.RecipientID]; err != nil {
		return nil, err
	}
	r.seq++
	n.ID = fmt.Sprintf("n-%d", r.seq)
	stored := n
	r.byID[n.ID] = &stored
	return &n, nil
}

func (r *memNotificationRepo) ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.byID {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok || n.RecipientID != recipientID {
		return nil, notification.ErrNotFound
	}
	n.MarkRead()
	copied := *n
	return &copied, nil
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.byID {
		if n.RecipientID == recipientID {
			n.MarkRead()
		}
	}
	return nil
}

func (r *memNotificationRepo) Delete(ctx context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok || n.RecipientID != recipientID {
		return notification.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memNotificationRepo) countFor(recipientID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.byID {
		if n.RecipientID == recipientID {
			count++
		}
	}
	return count
}

type fakeLivePusher struct {
	mu        sync.Mutex
	delivered map[string][][]byte
	online    map[string]bool
	broken    bool
}

func newFakeLivePusher() *fakeLivePusher {
	return &fakeLivePusher{delivered: make(map[string][][]byte), online: make(map[string]bool)}
}

func (p *fakeLivePusher) SendToUser(userID string, payload []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.broken || !p.online[userID] {
		return false
	}
	p.delivered[userID] = append(p.delivered[userID], payload)
	return true
}

type fakeDirectory struct {
	names     map[string]string
	tokens    map[string][]string
	followers map[string][]string
}

func (d *fakeDirectory) FindSummary(ctx context.Context, userID string) (*dirport.UserSummary, error) {
	name, ok := d.names[userID]
	if !ok {
		return nil, nil
	}
	return &dirport.UserSummary{ID: userID, Name: name}, nil
}

func (d *fakeDirectory) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	return d.tokens[userID], nil
}

func (d *fakeDirectory) FollowerIDs(ctx context.Context, leaderID string) ([]string, error) {
	return d.followers[leaderID], nil
}

type fakeGateway struct {
	mu    sync.Mutex
	sends int
	err   error
}

func (g *fakeGateway) Send(ctx context.Context, tokens []string, msg gwport.PushMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.sends++
	return nil
}

func newTestDispatcher(repo *memNotificationRepo, live *fakeLivePusher, dir *fakeDirectory, gw *fakeGateway) *Dispatcher {
	if dir == nil {
		dir = &fakeDirectory{}
	}
	var gateway gwport.PushGateway
	if gw != nil {
		gateway = gw
	}
	return NewDispatcher(repo, dir, live, nil, gateway, zerolog.Nop(), 3)
}

func TestDispatcher_PersistsEvenWhenLivePushFails(t *testing.T) {
	repo := newMemNotificationRepo()
	live := newFakeLivePusher()
	live.broken = true

	d := newTestDispatcher(repo, live, nil, nil)
	d.Notify(context.Background(), Input{
		RecipientID: "u1",
		SenderID:    "u2",
		Type:        notification.TypeLike,
		Title:       "Post Liked",
		Message:     "Someone liked your post!",
	})

	require.Equal(t, 1, repo.countFor("u1"))
	list, err := repo.ListForRecipient(context.Background(), "u1", 30, 0)
	require.NoError(t, err)
	require.False(t, list[0].IsRead)
}

func TestDispatcher_MalformedInputIsSilentNoop(t *testing.T) {
	repo := newMemNotificationRepo()
	d := newTestDispatcher(repo, newFakeLivePusher(), nil, nil)

	d.Notify(context.Background(), Input{RecipientID: "", Type: notification.TypeLike, Title: "t", Message: "m"})
	d.Notify(context.Background(), Input{RecipientID: "u1", Type: "BOGUS", Title: "t", Message: "m"})
	d.Notify(context.Background(), Input{RecipientID: "u1", Type: notification.TypeLike, Title: "", Message: "m"})
	d.Notify(context.Background(), Input{RecipientID: "u1", Type: notification.TypeLike, Title: "t", Message: ""})

	require.Zero(t, repo.countFor("u1"))
}

func TestDispatcher_PersistFailureSkipsPushSteps(t *testing.T) {
	repo := newMemNotificationRepo()
	repo.failFor["u1"] = errors.New("db down")
	live := newFakeLivePusher()
	live.online["u1"] = true

	d := newTestDispatcher(repo, live, nil, nil)
	d.Notify(context.Background(), Input{
		RecipientID: "u1",
		Type:        notification.TypeSystem,
		Title:       "t",
		Message:     "m",
	})

	require.Empty(t, live.delivered["u1"])
}

func TestDispatcher_NotifyManyIsolatesFailures(t *testing.T) {
	repo := newMemNotificationRepo()
	repo.failFor["u2"] = errors.New("db down for u2")
	live := newFakeLivePusher()
	live.online["u1"] = true
	live.online["u3"] = true

	d := newTestDispatcher(repo, live, nil, nil)
	d.NotifyMany(context.Background(), []string{"u1", "u2", "u3"}, Input{
		Type:    notification.TypeNewPost,
		Title:   "New Post from Leader",
		Message: "A leader shared a new post",
	})

	require.Equal(t, 1, repo.countFor("u1"))
	require.Zero(t, repo.countFor("u2"))
	require.Equal(t, 1, repo.countFor("u3"))
	require.Len(t, live.delivered["u1"], 1)
	require.Len(t, live.delivered["u3"], 1)
}

func TestDispatcher_NotifyManySurvivesPanickingRecipient(t *testing.T) {
	repo := newMemNotificationRepo()
	repo.panicFor["u2"] = true

	d := newTestDispatcher(repo, newFakeLivePusher(), nil, nil)
	require.NotPanics(t, func() {
		d.NotifyMany(context.Background(), []string{"u1", "u2", "u3"}, Input{
			Type:    notification.TypeNewPost,
			Title:   "t",
			Message: "m",
		})
	})

	require.Equal(t, 1, repo.countFor("u1"))
	require.Equal(t, 1, repo.countFor("u3"))
}

func TestDispatcher_InlineMobilePushBestEffort(t *testing.T) {
	repo := newMemNotificationRepo()
	dir := &fakeDirectory{tokens: map[string][]string{"u1": {"tok-a", "tok-b"}}}
	gw := &fakeGateway{}

	d := newTestDispatcher(repo, newFakeLivePusher(), dir, gw)
	d.Notify(context.Background(), Input{
		RecipientID: "u1",
		Type:        notification.TypeMessage,
		Title:       "Alice",
		Message:     "hi",
	})

	require.Equal(t, 1, gw.sends)

	// A failing gateway must not affect the persisted record.
	gw.err = errors.New("provider down")
	d.Notify(context.Background(), Input{
		RecipientID: "u1",
		Type:        notification.TypeMessage,
		Title:       "Alice",
		Message:     "hi again",
	})
	require.Equal(t, 2, repo.countFor("u1"))
}
