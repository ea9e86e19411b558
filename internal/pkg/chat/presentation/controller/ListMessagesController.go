package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HarichndR/Faithconnect/internal/pkg/chat/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/adapter"
)

// ListMessagesController handles fetching a conversation's history for one
// of its participants.
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(pool *pgxpool.Pool) *ListMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListMessagesController{UC: usecase.NewListMessagesUseCase(repo)}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.ListMessagesInput{
			ConversationID: chatID,
			UserID:         userID,
		})
		if err != nil {
			c.JSON(chatErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":         m.ID,
				"chat_id":    m.ConversationID,
				"sender_id":  m.SenderID,
				"content":    m.Content,
				"seen_by":    m.SeenBy,
				"created_at": m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"messages": out, "count": len(out)})
	}
}
