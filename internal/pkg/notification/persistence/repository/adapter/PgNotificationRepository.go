package adapter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Save(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}

	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO social.notification (recipient_id, sender_id, type, title, message, data)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6::jsonb)
		RETURNING id::text, is_read, created_at
	`, n.RecipientID, n.SenderID, string(n.Type), n.Title, n.Message, raw).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, recipient_id::text, sender_id::text, type, title, message, data, is_read, created_at
		FROM social.notification
		WHERE recipient_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE social.notification
		SET is_read = true
		WHERE id = $1::uuid AND recipient_id = $2::uuid
		RETURNING id::text, recipient_id::text, sender_id::text, type, title, message, data, is_read, created_at
	`, id, recipientID)
	n, err := scanNotification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notification.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE social.notification
		SET is_read = true
		WHERE recipient_id = $1::uuid AND is_read = false
	`, recipientID)
	return err
}

func (r *PgNotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM social.notification
		WHERE id = $1::uuid AND recipient_id = $2::uuid
	`, id, recipientID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return notification.ErrNotFound
	}
	return nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n   notification.Notification
		typ string
		raw []byte
	)
	if err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &typ, &n.Title, &n.Message, &raw, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Type = notification.Type(typ)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &n.Data); err != nil {
			return nil, err
		}
	}
	return &n, nil
}
