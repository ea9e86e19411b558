package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/pkg/chat/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/adapter"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// SendMessageController handles the send-message endpoint only (one controller per endpoint)
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(
	pool *pgxpool.Pool,
	directory dirport.UserDirectory,
	notifier usecase.Notifier,
	live usecase.LivePusher,
	log zerolog.Logger,
) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo, directory, notifier, live, log)}
}

type sendMessageRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: chatID,
			SenderID:       req.SenderID,
			Content:        req.Content,
		})
		if err != nil {
			c.JSON(chatErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         msg.ID,
			"chat_id":    msg.ConversationID,
			"sender_id":  msg.SenderID,
			"content":    msg.Content,
			"seen_by":    msg.SeenBy,
			"created_at": msg.CreatedAt,
		})
	}
}
