package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Statements are idempotent so repeated boots
// are safe; a dedicated migration tool can replace this once the schema
// starts evolving.
const schema = `
CREATE SCHEMA IF NOT EXISTS chat;
CREATE SCHEMA IF NOT EXISTS social;

CREATE TABLE IF NOT EXISTS chat.conversation (
    id               uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    participant_low  uuid NOT NULL,
    participant_high uuid NOT NULL,
    last_message_id  uuid,
    created_at       timestamptz NOT NULL DEFAULT now(),
    updated_at       timestamptz NOT NULL DEFAULT now(),
    UNIQUE (participant_low, participant_high)
);

CREATE TABLE IF NOT EXISTS chat.participant_state (
    conversation_id uuid NOT NULL REFERENCES chat.conversation(id),
    user_id         uuid NOT NULL,
    unread_count    integer NOT NULL DEFAULT 0,
    PRIMARY KEY (conversation_id, user_id)
);

CREATE TABLE IF NOT EXISTS chat.message (
    id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    conversation_id uuid NOT NULL REFERENCES chat.conversation(id),
    sender_id       uuid NOT NULL,
    content         text NOT NULL,
    created_at      timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS message_conversation_created_idx
    ON chat.message (conversation_id, created_at);

CREATE TABLE IF NOT EXISTS chat.message_seen (
    message_id uuid NOT NULL REFERENCES chat.message(id),
    user_id    uuid NOT NULL,
    PRIMARY KEY (message_id, user_id)
);

CREATE TABLE IF NOT EXISTS social.notification (
    id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    recipient_id uuid NOT NULL,
    sender_id    uuid,
    type         text NOT NULL,
    title        text NOT NULL,
    message      text NOT NULL,
    data         jsonb NOT NULL DEFAULT '{}'::jsonb,
    is_read      boolean NOT NULL DEFAULT false,
    created_at   timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS notification_recipient_created_idx
    ON social.notification (recipient_id, created_at DESC);

CREATE TABLE IF NOT EXISTS social.conference (
    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    room_id       text NOT NULL UNIQUE,
    leader_id     uuid NOT NULL,
    title         text NOT NULL,
    description   text NOT NULL DEFAULT '',
    thumbnail_url text,
    status        text NOT NULL DEFAULT 'planned'
        CHECK (status IN ('planned', 'live', 'ended')),
    start_time    timestamptz NOT NULL DEFAULT now(),
    created_at    timestamptz NOT NULL DEFAULT now(),
    updated_at    timestamptz NOT NULL DEFAULT now()
);

-- app_user and follow are owned by the user/CRUD service; bootstrapped here
-- so development environments can run the delivery core standalone.
CREATE TABLE IF NOT EXISTS social.app_user (
    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    name          text NOT NULL,
    profile_photo text,
    device_tokens text[] NOT NULL DEFAULT '{}',
    created_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS social.follow (
    follower_id uuid NOT NULL,
    leader_id   uuid NOT NULL,
    PRIMARY KEY (follower_id, leader_id)
);

CREATE TABLE IF NOT EXISTS social.conference_viewer (
    conference_id uuid NOT NULL REFERENCES social.conference(id),
    user_id       uuid NOT NULL,
    PRIMARY KEY (conference_id, user_id)
);
`

// Migrate applies the embedded schema against the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: apply schema: %w", err)
	}
	return nil
}
