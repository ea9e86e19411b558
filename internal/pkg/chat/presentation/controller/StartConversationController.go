package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/HarichndR/Faithconnect/internal/pkg/chat/application/domain"
	"github.com/HarichndR/Faithconnect/internal/pkg/chat/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/chat/persistence/repository/adapter"
)

// StartConversationController handles conversation creation (one controller per endpoint)
type StartConversationController struct {
	UC *usecase.StartConversationUseCase
}

func NewStartConversationController(pool *pgxpool.Pool) *StartConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &StartConversationController{UC: usecase.NewStartConversationUseCase(repo)}
}

type startConversationRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	TargetUserID string `json:"target_user_id" binding:"required"`
}

func (h *StartConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.StartConversationInput{
			UserID:       req.UserID,
			TargetUserID: req.TargetUserID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":           conv.ID,
			"participants": conv.Participants(),
			"created_at":   conv.CreatedAt,
		})
	}
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
