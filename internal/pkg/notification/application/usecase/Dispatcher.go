package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	qport "github.com/HarichndR/Faithconnect/internal/infrastructure/queue/port"
	"github.com/HarichndR/Faithconnect/internal/metrics"
	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
	"github.com/HarichndR/Faithconnect/internal/pkg/notification/application/task"
	gwport "github.com/HarichndR/Faithconnect/internal/pkg/notification/gateway/port"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/notification/persistence/repository/port"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// LivePusher delivers a payload to a user's live socket, reporting whether a
// session accepted it. Satisfied by realtime.Registry.
type LivePusher interface {
	SendToUser(userID string, payload []byte) bool
}

// Input carries one notification to dispatch. Sender is optional; system
// style notices (e.g. an unfollow) leave it empty.
type Input struct {
	RecipientID string
	SenderID    string
	Type        notification.Type
	Title       string
	Message     string
	Data        map[string]any
}

// Dispatcher persists notifications and fans them out over the live socket
// and the mobile push gateway.
//
// Delivery is advisory by contract: no step of Notify ever surfaces an error
// to the action that triggered it. Persistence happens first so a client that
// misses the live event still finds a consistent record; the live and mobile
// steps are each best-effort and isolated from one another.
type Dispatcher struct {
	repo      repository.NotificationRepository
	directory dirport.UserDirectory
	live      LivePusher
	queue     qport.Client
	gateway   gwport.PushGateway
	log       zerolog.Logger

	pushMaxRetry int
}

func NewDispatcher(
	repo repository.NotificationRepository,
	directory dirport.UserDirectory,
	live LivePusher,
	queue qport.Client,
	gateway gwport.PushGateway,
	log zerolog.Logger,
	pushMaxRetry int,
) *Dispatcher {
	if pushMaxRetry <= 0 {
		pushMaxRetry = 3
	}
	return &Dispatcher{
		repo:         repo,
		directory:    directory,
		live:         live,
		queue:        queue,
		gateway:      gateway,
		log:          log,
		pushMaxRetry: pushMaxRetry,
	}
}

// livePayload is the socket representation of a freshly created notification.
type livePayload struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type liveFrame struct {
	Type         string      `json:"type"`
	Notification livePayload `json:"notification"`
}

// Notify dispatches one notification. Malformed calls (missing recipient,
// type, title or message) are logged and dropped without error; dispatch must
// never raise back into the triggering business action.
func (d *Dispatcher) Notify(ctx context.Context, in Input) {
	if in.RecipientID == "" || in.Title == "" || in.Message == "" || !in.Type.Valid() {
		d.log.Warn().
			Str("recipient", in.RecipientID).
			Str("type", string(in.Type)).
			Msg("dropping malformed notification")
		return
	}

	var sender *string
	if in.SenderID != "" {
		sender = &in.SenderID
	}

	// Persist first. Without a durable record there is nothing for a
	// reconnecting client to reconcile against, so the push steps are
	// skipped entirely on failure.
	saved, err := d.repo.Save(ctx, notification.Notification{
		RecipientID: in.RecipientID,
		SenderID:    sender,
		Type:        in.Type,
		Title:       in.Title,
		Message:     in.Message,
		Data:        in.Data,
	})
	if err != nil {
		d.log.Error().Err(err).
			Str("recipient", in.RecipientID).
			Str("type", string(in.Type)).
			Msg("notification persist failed")
		return
	}
	metrics.NotificationsDispatched.WithLabelValues(string(saved.Type)).Inc()

	d.pushLive(saved)
	d.pushMobile(ctx, saved)
}

// NotifyMany fans the template out to every recipient concurrently and
// independently: one recipient's failure never delays or fails delivery to
// any other, and there is no aggregate result.
func (d *Dispatcher) NotifyMany(ctx context.Context, recipientIDs []string, tmpl Input) {
	var wg sync.WaitGroup
	for _, id := range recipientIDs {
		if id == "" {
			continue
		}
		wg.Add(1)
		go func(recipientID string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.log.Error().
						Interface("panic", r).
						Str("recipient", recipientID).
						Msg("notification fan-out panicked")
				}
			}()
			in := tmpl
			in.RecipientID = recipientID
			d.Notify(ctx, in)
		}(id)
	}
	wg.Wait()
}

func (d *Dispatcher) pushLive(n *notification.Notification) {
	if d.live == nil {
		return
	}
	frame := liveFrame{
		Type: "notification",
		Notification: livePayload{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			CreatedAt: n.CreatedAt,
		},
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		d.log.Error().Err(err).Msg("notification live payload encode failed")
		metrics.NotificationDeliveries.WithLabelValues("live", "error").Inc()
		return
	}
	if d.live.SendToUser(n.RecipientID, payload) {
		metrics.NotificationDeliveries.WithLabelValues("live", "delivered").Inc()
	} else {
		metrics.NotificationDeliveries.WithLabelValues("live", "offline").Inc()
	}
}

func (d *Dispatcher) pushMobile(ctx context.Context, n *notification.Notification) {
	data := make(map[string]string, len(n.Data)+1)
	for k, v := range n.Data {
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	data["type"] = string(n.Type)

	if d.queue != nil {
		payload, err := json.Marshal(task.MobilePushPayload{
			RecipientID: n.RecipientID,
			Title:       n.Title,
			Body:        n.Message,
			Data:        data,
		})
		if err != nil {
			d.log.Error().Err(err).Msg("mobile push payload encode failed")
			return
		}
		_, err = d.queue.Enqueue(ctx, qport.Task{Type: task.MobilePushTaskType, Payload: payload},
			qport.EnqueueOption{Queue: "push", MaxRetry: d.pushMaxRetry})
		if err != nil {
			d.log.Error().Err(err).
				Str("recipient", n.RecipientID).
				Msg("mobile push enqueue failed")
			metrics.NotificationDeliveries.WithLabelValues("push", "error").Inc()
		} else {
			metrics.NotificationDeliveries.WithLabelValues("push", "queued").Inc()
		}
		return
	}

	// No queue wired (tests, stripped-down deployments): deliver inline,
	// still best-effort.
	if d.gateway == nil || d.directory == nil {
		return
	}
	tokens, err := d.directory.DeviceTokens(ctx, n.RecipientID)
	if err != nil {
		d.log.Error().Err(err).Str("recipient", n.RecipientID).Msg("device token lookup failed")
		metrics.NotificationDeliveries.WithLabelValues("push", "error").Inc()
		return
	}
	if len(tokens) == 0 {
		return
	}
	if err := d.gateway.Send(ctx, tokens, gwport.PushMessage{Title: n.Title, Body: n.Message, Data: data}); err != nil {
		d.log.Error().Err(err).Str("recipient", n.RecipientID).Msg("mobile push failed")
		metrics.NotificationDeliveries.WithLabelValues("push", "error").Inc()
		return
	}
	metrics.NotificationDeliveries.WithLabelValues("push", "delivered").Inc()
}
