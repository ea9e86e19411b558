package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
)

const roomColumns = `id, room_id, leader_id, title, description, thumbnail_url, status, start_time, created_at, updated_at`

// PgConferenceRepository persists conferences in PostgreSQL.
type PgConferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgConferenceRepository(pool *pgxpool.Pool) *PgConferenceRepository {
	return &PgConferenceRepository{pool: pool}
}

func (r *PgConferenceRepository) Save(ctx context.Context, room conference.Room) (*conference.Room, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO social.conference (room_id, leader_id, title, description, thumbnail_url, status, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+roomColumns,
		room.RoomID, room.LeaderID, room.Title, room.Description, room.ThumbnailURL, room.Status, room.ScheduledAt)
	saved, err := scanRoom(row)
	if err != nil {
		return nil, fmt.Errorf("postgres: save conference: %w", err)
	}
	return saved, nil
}

func (r *PgConferenceRepository) FindByRoomID(ctx context.Context, roomID string) (*conference.Room, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+roomColumns+`
		FROM social.conference
		WHERE room_id = $1`, roomID)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, conference.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: find conference: %w", err)
	}
	return room, nil
}

func (r *PgConferenceRepository) ListActive(ctx context.Context) ([]conference.Room, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+roomColumns+`
		FROM social.conference
		WHERE status <> 'ended'
		ORDER BY (status = 'live') DESC, start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list conferences: %w", err)
	}
	defer rows.Close()

	var out []conference.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan conference: %w", err)
		}
		out = append(out, *room)
	}
	return out, rows.Err()
}

func (r *PgConferenceRepository) UpdateStatus(ctx context.Context, roomID, leaderID string, status conference.Status) (*conference.Room, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE social.conference
		SET status = $3, updated_at = now()
		WHERE room_id = $1 AND leader_id = $2
		RETURNING `+roomColumns,
		roomID, leaderID, status)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, conference.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: update conference status: %w", err)
	}
	return room, nil
}

func (r *PgConferenceRepository) AddViewer(ctx context.Context, conferenceID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO social.conference_viewer (conference_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, conferenceID, userID)
	if err != nil {
		return fmt.Errorf("postgres: add viewer: %w", err)
	}
	return nil
}

func (r *PgConferenceRepository) ViewerCount(ctx context.Context, conferenceID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM social.conference_viewer WHERE conference_id = $1`, conferenceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: count viewers: %w", err)
	}
	return count, nil
}

func scanRoom(row pgx.Row) (*conference.Room, error) {
	var room conference.Room
	err := row.Scan(
		&room.ID, &room.RoomID, &room.LeaderID, &room.Title, &room.Description,
		&room.ThumbnailURL, &room.Status, &room.ScheduledAt, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
