package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	"github.com/HarichndR/Faithconnect/internal/pkg/conference/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/adapter"
)

func conferenceErrorStatus(err error) int {
	switch {
	case errors.Is(err, conference.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, conference.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, conference.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func toJSON(room conference.Room) gin.H {
	return gin.H{
		"id":            room.ID,
		"room_id":       room.RoomID,
		"leader_id":     room.LeaderID,
		"title":         room.Title,
		"description":   room.Description,
		"thumbnail_url": room.ThumbnailURL,
		"status":        room.Status,
		"start_time":    room.ScheduledAt,
		"created_at":    room.CreatedAt,
	}
}

// CreateConferenceController schedules a new conference.
type CreateConferenceController struct {
	UC *usecase.CreateConferenceUseCase
}

func NewCreateConferenceController(pool *pgxpool.Pool) *CreateConferenceController {
	repo := adapter.NewPgConferenceRepository(pool)
	return &CreateConferenceController{UC: usecase.NewCreateConferenceUseCase(repo)}
}

type createConferenceRequest struct {
	LeaderID     string     `json:"leader_id" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	ThumbnailURL *string    `json:"thumbnail_url"`
	StartTime    *time.Time `json:"start_time"`
}

func (h *CreateConferenceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.CreateConferenceInput{
			LeaderID:     req.LeaderID,
			Title:        req.Title,
			Description:  req.Description,
			ThumbnailURL: req.ThumbnailURL,
		}
		if req.StartTime != nil {
			in.ScheduledAt = *req.StartTime
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		room, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(conferenceErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toJSON(*room))
	}
}

// ListConferencesController returns joinable conferences.
type ListConferencesController struct {
	UC *usecase.ListActiveConferencesUseCase
}

func NewListConferencesController(pool *pgxpool.Pool) *ListConferencesController {
	repo := adapter.NewPgConferenceRepository(pool)
	return &ListConferencesController{UC: usecase.NewListActiveConferencesUseCase(repo)}
}

func (h *ListConferencesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rooms, err := h.UC.Execute(ctx)
		if err != nil {
			c.JSON(conferenceErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(rooms))
		for _, room := range rooms {
			out = append(out, toJSON(room))
		}
		c.JSON(http.StatusOK, gin.H{"conferences": out, "count": len(out)})
	}
}

// GetConferenceController resolves one conference by room id.
type GetConferenceController struct {
	UC *usecase.GetConferenceUseCase
}

func NewGetConferenceController(pool *pgxpool.Pool) *GetConferenceController {
	repo := adapter.NewPgConferenceRepository(pool)
	return &GetConferenceController{UC: usecase.NewGetConferenceUseCase(repo)}
}

func (h *GetConferenceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		room, err := h.UC.Execute(ctx, c.Param("roomId"))
		if err != nil {
			c.JSON(conferenceErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toJSON(*room))
	}
}

// UpdateConferenceStatusController advances the lifecycle stage.
type UpdateConferenceStatusController struct {
	UC *usecase.UpdateStatusUseCase
}

func NewUpdateConferenceStatusController(pool *pgxpool.Pool) *UpdateConferenceStatusController {
	repo := adapter.NewPgConferenceRepository(pool)
	return &UpdateConferenceStatusController{UC: usecase.NewUpdateStatusUseCase(repo)}
}

type updateStatusRequest struct {
	LeaderID string `json:"leader_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

func (h *UpdateConferenceStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		room, err := h.UC.Execute(ctx, usecase.UpdateStatusInput{
			RoomID:   c.Param("roomId"),
			LeaderID: req.LeaderID,
			Status:   conference.Status(req.Status),
		})
		if err != nil {
			c.JSON(conferenceErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toJSON(*room))
	}
}
