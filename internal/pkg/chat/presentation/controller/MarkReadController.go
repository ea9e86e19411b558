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

// MarkReadController acknowledges a conversation for the calling participant.
type MarkReadController struct {
	UC *usecase.MarkReadUseCase
}

func NewMarkReadController(pool *pgxpool.Pool) *MarkReadController {
	repo := adapter.NewPgChatRepository(pool)
	return &MarkReadController{UC: usecase.NewMarkReadUseCase(repo)}
}

type markReadRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")

		var req markReadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.MarkReadInput{ConversationID: chatID, UserID: req.UserID})
		if err != nil {
			c.JSON(chatErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "read"})
	}
}
