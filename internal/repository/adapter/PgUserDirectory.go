package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	port "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// PgUserDirectory reads user summaries, device tokens and follower lists from
// the tables owned by the user/CRUD service.
type PgUserDirectory struct {
	pool *pgxpool.Pool
}

func NewPgUserDirectory(pool *pgxpool.Pool) *PgUserDirectory {
	return &PgUserDirectory{pool: pool}
}

var _ port.UserDirectory = (*PgUserDirectory)(nil)

func (d *PgUserDirectory) FindSummary(ctx context.Context, userID string) (*port.UserSummary, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("PgUserDirectory: nil pool")
	}
	var (
		s     port.UserSummary
		photo *string
	)
	err := d.pool.QueryRow(ctx, `
		SELECT id::text, name, profile_photo
		FROM social.app_user
		WHERE id = $1::uuid
	`, userID).Scan(&s.ID, &s.Name, &photo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if photo != nil {
		s.ProfilePhoto = *photo
	}
	return &s, nil
}

func (d *PgUserDirectory) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("PgUserDirectory: nil pool")
	}
	var tokens []string
	err := d.pool.QueryRow(ctx, `
		SELECT device_tokens
		FROM social.app_user
		WHERE id = $1::uuid
	`, userID).Scan(&tokens)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (d *PgUserDirectory) FollowerIDs(ctx context.Context, leaderID string) ([]string, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("PgUserDirectory: nil pool")
	}
	rows, err := d.pool.Query(ctx, `
		SELECT follower_id::text
		FROM social.follow
		WHERE leader_id = $1::uuid
	`, leaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
