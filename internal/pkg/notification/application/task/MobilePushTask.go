package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	qport "github.com/HarichndR/Faithconnect/internal/infrastructure/queue/port"
	gwport "github.com/HarichndR/Faithconnect/internal/pkg/notification/gateway/port"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// MobilePushTaskType is the queue task name for forwarding a notification to
// the mobile push gateway.
const MobilePushTaskType = "notification:mobile_push"

// MobilePushPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid tight coupling with JSON tags.
type MobilePushPayload struct {
	RecipientID string            `json:"recipientId"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
}

// RegisterMobilePushTask binds the push handler to the worker server. The
// handler resolves the recipient's device tokens and forwards to the gateway;
// a returned error triggers the adapter's bounded retry policy, after which
// the delivery is dropped. The notification record itself is already
// persisted by then, so nothing user-visible is lost beyond the push.
func RegisterMobilePushTask(srv qport.Server, directory dirport.UserDirectory, gateway gwport.PushGateway, log zerolog.Logger) {
	srv.Register(MobilePushTaskType, func(ctx context.Context, t qport.Task) error {
		var p MobilePushPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payloads never become deliverable; drop without retry.
			log.Error().Err(err).Msg("mobile push payload malformed")
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		tokens, err := directory.DeviceTokens(ctx, p.RecipientID)
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			return nil
		}

		return gateway.Send(ctx, tokens, gwport.PushMessage{
			Title: p.Title,
			Body:  p.Body,
			Data:  p.Data,
		})
	})
}
