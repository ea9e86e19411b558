package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/infrastructure/realtime"
	"github.com/HarichndR/Faithconnect/internal/pkg/realtime/presentation/controller"
)

// RegisterRoutes registers the websocket endpoint under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, registry *realtime.Registry, relay *realtime.Relay, log zerolog.Logger) {
	socketCtl := controller.NewSocketGatewayController(pool, registry, relay, log)

	// GET /api/v1/ws -> the single realtime connection per user
	g.GET("/ws", socketCtl.Handle())
}
