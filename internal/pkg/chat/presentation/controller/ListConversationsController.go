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

// ListConversationsController returns a user's inbox with unread counters.
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		views, err := h.UC.Execute(ctx, userID)
		if err != nil {
			c.JSON(chatErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(views))
		for _, v := range views {
			item := gin.H{
				"id":           v.ID,
				"participants": v.Participants(),
				"unread_count": v.UnreadCount,
				"updated_at":   v.UpdatedAt,
			}
			if v.LastMessage != nil {
				item["last_message"] = gin.H{
					"id":         v.LastMessage.ID,
					"sender_id":  v.LastMessage.SenderID,
					"content":    v.LastMessage.Content,
					"created_at": v.LastMessage.CreatedAt,
				}
			}
			out = append(out, item)
		}

		c.JSON(http.StatusOK, gin.H{"conversations": out, "count": len(out)})
	}
}
