package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) GetOrCreateConversation(ctx context.Context, low, high string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	// The unique (participant_low, participant_high) constraint makes this
	// race-safe: concurrent first calls collapse onto one row.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat.conversation (participant_low, participant_high)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (participant_low, participant_high) DO NOTHING
	`, low, high)
	if err != nil {
		return nil, err
	}

	var c chat.Conversation
	err = r.pool.QueryRow(ctx, `
		SELECT id::text, participant_low::text, participant_high::text,
		       last_message_id::text, created_at, updated_at
		FROM chat.conversation
		WHERE participant_low = $1::uuid AND participant_high = $2::uuid
	`, low, high).Scan(&c.ID, &c.ParticipantLow, &c.ParticipantHigh, &c.LastMessageID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Counter rows exist from creation so the unread map's keys always stay
	// within the participant set.
	_, err = r.pool.Exec(ctx, `
		INSERT INTO chat.participant_state (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid), ($1::uuid, $3::uuid)
		ON CONFLICT (conversation_id, user_id) DO NOTHING
	`, c.ID, low, high)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *PgChatRepository) FindConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, participant_low::text, participant_high::text,
		       last_message_id::text, created_at, updated_at
		FROM chat.conversation
		WHERE id = $1::uuid
	`, conversationID).Scan(&c.ID, &c.ParticipantLow, &c.ParticipantHigh, &c.LastMessageID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) ListConversationsForUser(ctx context.Context, userID string) ([]chat.ConversationView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.participant_low::text, c.participant_high::text,
		       c.last_message_id::text, c.created_at, c.updated_at,
		       COALESCE(ps.unread_count, 0),
		       m.id::text, m.sender_id::text, m.content, m.created_at
		FROM chat.conversation c
		LEFT JOIN chat.participant_state ps
		       ON ps.conversation_id = c.id AND ps.user_id = $1::uuid
		LEFT JOIN chat.message m ON m.id = c.last_message_id
		WHERE c.participant_low = $1::uuid OR c.participant_high = $1::uuid
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []chat.ConversationView
	for rows.Next() {
		var (
			v         chat.ConversationView
			msgID     *string
			msgSender *string
			msgBody   *string
			msgAt     *time.Time
		)
		if err := rows.Scan(&v.ID, &v.ParticipantLow, &v.ParticipantHigh,
			&v.LastMessageID, &v.CreatedAt, &v.UpdatedAt, &v.UnreadCount,
			&msgID, &msgSender, &msgBody, &msgAt); err != nil {
			return nil, err
		}
		if msgID != nil {
			v.LastMessage = &chat.Message{
				ID:             *msgID,
				ConversationID: v.ID,
				SenderID:       *msgSender,
				Content:        *msgBody,
				CreatedAt:      *msgAt,
			}
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PgChatRepository) AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, content, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Content, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO chat.message_seen (message_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT DO NOTHING
	`, m.ID, m.SenderID); err != nil {
		return nil, err
	}

	// Per-key increment at the storage layer; never read-modify-write.
	if _, err = tx.Exec(ctx, `
		UPDATE chat.participant_state
		SET unread_count = unread_count + 1
		WHERE conversation_id = $1::uuid AND user_id <> $2::uuid
	`, m.ConversationID, m.SenderID); err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message_id = $2::uuid, updated_at = now()
		WHERE id = $1::uuid
	`, m.ConversationID, m.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.conversation_id::text, m.sender_id::text, m.content, m.created_at,
		       COALESCE(array_agg(s.user_id::text) FILTER (WHERE s.user_id IS NOT NULL), '{}')
		FROM chat.message m
		LEFT JOIN chat.message_seen s ON s.message_id = m.id
		WHERE m.conversation_id = $1::uuid
		GROUP BY m.id
		ORDER BY m.created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt, &msg.SeenBy); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE chat.participant_state
		SET unread_count = 0
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotFound
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO chat.message_seen (message_id, user_id)
		SELECT m.id, $2::uuid
		FROM chat.message m
		WHERE m.conversation_id = $1::uuid
		ON CONFLICT DO NOTHING
	`, conversationID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
