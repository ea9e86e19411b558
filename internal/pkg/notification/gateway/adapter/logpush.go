package adapter

import (
	"context"

	"github.com/rs/zerolog"

	port "github.com/HarichndR/Faithconnect/internal/pkg/notification/gateway/port"
)

// LogPushGateway stands in for a real provider (FCM/Expo) and only records
// what would have been sent. Swap in a provider-backed implementation of
// port.PushGateway to go live; nothing upstream changes.
type LogPushGateway struct {
	log zerolog.Logger
}

func NewLogPushGateway(log zerolog.Logger) *LogPushGateway {
	return &LogPushGateway{log: log}
}

var _ port.PushGateway = (*LogPushGateway)(nil)

func (g *LogPushGateway) Send(ctx context.Context, tokens []string, msg port.PushMessage) error {
	if len(tokens) == 0 {
		return nil
	}
	g.log.Info().
		Int("devices", len(tokens)).
		Str("title", msg.Title).
		Msg("push delivery (placeholder)")
	return nil
}
