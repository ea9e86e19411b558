package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HarichndR/Faithconnect/internal/pkg/notification/presentation/controller"
)

// RegisterRoutes registers notification endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	listCtl := controller.NewListNotificationsController(pool)
	markOneCtl := controller.NewMarkNotificationReadController(pool)
	markAllCtl := controller.NewMarkAllNotificationsReadController(pool)
	deleteCtl := controller.NewDeleteNotificationController(pool)

	// GET /api/v1/notifications -> the caller's feed, newest first
	g.GET("/notifications", listCtl.Handle())

	// PATCH /api/v1/notifications/read-all -> clear the whole unread set
	g.PATCH("/notifications/read-all", markAllCtl.Handle())

	// PATCH /api/v1/notifications/:id/read -> mark one read
	g.PATCH("/notifications/:id/read", markOneCtl.Handle())

	// DELETE /api/v1/notifications/:id -> remove one
	g.DELETE("/notifications/:id", deleteCtl.Handle())
}
