package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/metrics"
	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	repository "github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/port"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// Notifier triggers the message-received notification for the recipient.
// Satisfied by the notification context's SocialTriggers.
type Notifier interface {
	MessageReceived(ctx context.Context, recipientID, senderID, senderName, preview, conversationID string)
}

// LivePusher pushes a frame straight to the recipient's open socket when they
// are connected. Satisfied by realtime.Registry.
type LivePusher interface {
	SendToUser(userID string, payload []byte) bool
}

// SendMessageInput carries one outgoing message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageUseCase appends a message to a conversation and fans it out: the
// storage write (message, seen-set, unread counters, last-message pointer) is
// atomic and authoritative; the live frame and the notification that follow
// are best-effort and never fail the send.
type SendMessageUseCase struct {
	Repo      repository.ChatRepository
	Directory dirport.UserDirectory
	Notifier  Notifier
	Live      LivePusher
	Log       zerolog.Logger
}

func NewSendMessageUseCase(
	repo repository.ChatRepository,
	directory dirport.UserDirectory,
	notifier Notifier,
	live LivePusher,
	log zerolog.Logger,
) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Directory: directory, Notifier: notifier, Live: live, Log: log}
}

type messageSender struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

type messageFrame struct {
	Type    string      `json:"type"`
	Message messageBody `json:"message"`
}

type messageBody struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"chatId"`
	SenderID       string        `json:"senderId"`
	Content        string        `json:"content"`
	CreatedAt      time.Time     `json:"createdAt"`
	Sender         messageSender `json:"sender"`
}

// Execute validates membership, persists the message atomically and then
// notifies the other participant. A sender outside the pair gets ErrNotFound
// rather than a membership hint.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	conv, err := uc.Repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		if err == chat.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.SenderID) {
		return nil, chat.ErrNotFound
	}

	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, in.Content)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.AppendMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	metrics.MessagesSent.Inc()

	recipientID := conv.Other(in.SenderID)
	sender := uc.senderSummary(ctx, in.SenderID)

	uc.pushLive(recipientID, saved, sender)
	if uc.Notifier != nil {
		uc.Notifier.MessageReceived(ctx, recipientID, in.SenderID, sender.Name, saved.Preview(), conv.ID)
	}

	return saved, nil
}

func (uc *SendMessageUseCase) senderSummary(ctx context.Context, senderID string) messageSender {
	out := messageSender{ID: senderID}
	if uc.Directory == nil {
		return out
	}
	summary, err := uc.Directory.FindSummary(ctx, senderID)
	if err != nil {
		uc.Log.Warn().Err(err).Str("sender", senderID).Msg("sender lookup failed")
		return out
	}
	if summary != nil {
		out.Name = summary.Name
		out.ProfilePhoto = summary.ProfilePhoto
	}
	return out
}

func (uc *SendMessageUseCase) pushLive(recipientID string, m *chat.Message, sender messageSender) {
	if uc.Live == nil {
		return
	}
	frame := messageFrame{
		Type: "newMessage",
		Message: messageBody{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
			Sender:         sender,
		},
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		uc.Log.Error().Err(err).Msg("message frame encode failed")
		return
	}
	uc.Live.SendToUser(recipientID, payload)
}
