package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HarichndR/Faithconnect/internal/pkg/conference/presentation/controller"
)

// RegisterRoutes registers conference endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	createCtl := controller.NewCreateConferenceController(pool)
	listCtl := controller.NewListConferencesController(pool)
	getCtl := controller.NewGetConferenceController(pool)
	statusCtl := controller.NewUpdateConferenceStatusController(pool)

	// POST /api/v1/conference -> schedule a conference
	g.POST("/conference", createCtl.Handle())

	// GET /api/v1/conference -> planned and live conferences
	g.GET("/conference", listCtl.Handle())

	// GET /api/v1/conference/:roomId -> one conference by room id
	g.GET("/conference/:roomId", getCtl.Handle())

	// PATCH /api/v1/conference/:roomId/status -> leader moves it forward
	g.PATCH("/conference/:roomId/status", statusCtl.Handle())
}
