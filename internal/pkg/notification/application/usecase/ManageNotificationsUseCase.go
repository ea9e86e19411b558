package usecase

import (
	"context"
	"errors"
	"fmt"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/notification/persistence/repository/port"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case.
var ErrPersistence = fmt.Errorf("notification use case persistence error")

// ManageNotificationsUseCase covers the recipient-facing notification
// operations: listing, the one-way read transition and deletion. All of them
// are scoped to the calling recipient; foreign ids surface as
// notification.ErrNotFound.
type ManageNotificationsUseCase struct {
	Repo repository.NotificationRepository
}

func NewManageNotificationsUseCase(repo repository.NotificationRepository) *ManageNotificationsUseCase {
	return &ManageNotificationsUseCase{Repo: repo}
}

// List returns the recipient's notifications, newest first.
func (uc *ManageNotificationsUseCase) List(ctx context.Context, recipientID string, limit, offset int) ([]notification.Notification, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("recipientId is required")
	}
	list, err := uc.Repo.ListForRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return list, nil
}

// MarkOne flips a single owned notification to read. Repeated calls are
// idempotent.
func (uc *ManageNotificationsUseCase) MarkOne(ctx context.Context, id, recipientID string) (*notification.Notification, error) {
	if id == "" || recipientID == "" {
		return nil, fmt.Errorf("id and recipientId are required")
	}
	n, err := uc.Repo.MarkRead(ctx, id, recipientID)
	if errors.Is(err, notification.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}

// MarkAll flips every unread notification of the recipient. Idempotent.
func (uc *ManageNotificationsUseCase) MarkAll(ctx context.Context, recipientID string) error {
	if recipientID == "" {
		return fmt.Errorf("recipientId is required")
	}
	if err := uc.Repo.MarkAllRead(ctx, recipientID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Delete removes one owned notification; the deleted state is terminal.
func (uc *ManageNotificationsUseCase) Delete(ctx context.Context, id, recipientID string) error {
	if id == "" || recipientID == "" {
		return fmt.Errorf("id and recipientId are required")
	}
	err := uc.Repo.Delete(ctx, id, recipientID)
	if errors.Is(err, notification.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
