package port

import "context"

// PushMessage is the payload handed to the mobile push provider.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushGateway attempts best-effort delivery to a set of device tokens.
// Failures are advisory: callers log them and move on, they never propagate
// to the action that triggered the notification.
type PushGateway interface {
	Send(ctx context.Context, tokens []string, msg PushMessage) error
}
