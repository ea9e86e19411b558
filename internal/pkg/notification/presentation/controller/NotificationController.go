package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/domain"
	"github.com/HarichndR/Faithconnect/internal/pkg/notification/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/notification/persistence/repository/adapter"
)

func notificationErrorStatus(err error) int {
	switch {
	case errors.Is(err, notification.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func toJSON(n notification.Notification) gin.H {
	return gin.H{
		"id":         n.ID,
		"sender_id":  n.SenderID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"data":       n.Data,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt,
	}
}

// ListNotificationsController returns a user's notification feed, newest first.
type ListNotificationsController struct {
	UC *usecase.ManageNotificationsUseCase
}

func NewListNotificationsController(pool *pgxpool.Pool) *ListNotificationsController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &ListNotificationsController{UC: usecase.NewManageNotificationsUseCase(repo)}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		limit := 30
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		items, err := h.UC.List(ctx, userID, limit, offset)
		if err != nil {
			c.JSON(notificationErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(items))
		for _, n := range items {
			out = append(out, toJSON(n))
		}
		c.JSON(http.StatusOK, gin.H{"notifications": out, "count": len(out)})
	}
}

// MarkNotificationReadController marks one notification read for its owner.
type MarkNotificationReadController struct {
	UC *usecase.ManageNotificationsUseCase
}

func NewMarkNotificationReadController(pool *pgxpool.Pool) *MarkNotificationReadController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &MarkNotificationReadController{UC: usecase.NewManageNotificationsUseCase(repo)}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.MarkOne(ctx, c.Param("id"), userID)
		if err != nil {
			c.JSON(notificationErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toJSON(*updated))
	}
}

// MarkAllNotificationsReadController clears a user's entire unread set.
type MarkAllNotificationsReadController struct {
	UC *usecase.ManageNotificationsUseCase
}

func NewMarkAllNotificationsReadController(pool *pgxpool.Pool) *MarkAllNotificationsReadController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &MarkAllNotificationsReadController{UC: usecase.NewManageNotificationsUseCase(repo)}
}

func (h *MarkAllNotificationsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.MarkAll(ctx, userID); err != nil {
			c.JSON(notificationErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "read"})
	}
}

// DeleteNotificationController removes one notification for its owner.
type DeleteNotificationController struct {
	UC *usecase.ManageNotificationsUseCase
}

func NewDeleteNotificationController(pool *pgxpool.Pool) *DeleteNotificationController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &DeleteNotificationController{UC: usecase.NewManageNotificationsUseCase(repo)}
}

func (h *DeleteNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Delete(ctx, c.Param("id"), userID); err != nil {
			c.JSON(notificationErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
