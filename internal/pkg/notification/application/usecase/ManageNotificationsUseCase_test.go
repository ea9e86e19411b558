package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
)

func seedNotification(t *testing.T, repo *memNotificationRepo, recipientID string) *notification.Notification {
	t.Helper()
	saved, err := repo.Save(context.Background(), notification.Notification{
		RecipientID: recipientID,
		Type:        notification.TypeLike,
		Title:       "Post Liked",
		Message:     "Someone liked your post!",
	})
	require.NoError(t, err)
	return saved
}

func TestManageNotifications_MarkOneScopedToOwner(t *testing.T) {
	repo := newMemNotificationRepo()
	uc := NewManageNotificationsUseCase(repo)
	saved := seedNotification(t, repo, "u1")

	_, err := uc.MarkOne(context.Background(), saved.ID, "intruder")
	require.ErrorIs(t, err, notification.ErrNotFound)

	got, err := uc.MarkOne(context.Background(), saved.ID, "u1")
	require.NoError(t, err)
	require.True(t, got.IsRead)

	// Marking an already read notification stays a no-op success.
	again, err := uc.MarkOne(context.Background(), saved.ID, "u1")
	require.NoError(t, err)
	require.True(t, again.IsRead)
}

func TestManageNotifications_MarkAllOnEmptySetSucceeds(t *testing.T) {
	repo := newMemNotificationRepo()
	uc := NewManageNotificationsUseCase(repo)

	require.NoError(t, uc.MarkAll(context.Background(), "nobody"))

	seedNotification(t, repo, "u1")
	seedNotification(t, repo, "u1")
	seedNotification(t, repo, "u2")
	require.NoError(t, uc.MarkAll(context.Background(), "u1"))

	list, err := uc.List(context.Background(), "u1", 30, 0)
	require.NoError(t, err)
	for _, n := range list {
		require.True(t, n.IsRead)
	}
	other, err := uc.List(context.Background(), "u2", 30, 0)
	require.NoError(t, err)
	require.False(t, other[0].IsRead)
}

func TestManageNotifications_DeleteScopedToOwner(t *testing.T) {
	repo := newMemNotificationRepo()
	uc := NewManageNotificationsUseCase(repo)
	saved := seedNotification(t, repo, "u1")

	require.ErrorIs(t, uc.Delete(context.Background(), saved.ID, "intruder"), notification.ErrNotFound)
	require.Equal(t, 1, repo.countFor("u1"))

	require.NoError(t, uc.Delete(context.Background(), saved.ID, "u1"))
	require.Zero(t, repo.countFor("u1"))

	require.ErrorIs(t, uc.Delete(context.Background(), saved.ID, "u1"), notification.ErrNotFound)
}
