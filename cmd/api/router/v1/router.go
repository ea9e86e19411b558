package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/infrastructure/realtime"
	chatHTTP "github.com/HarichndR/Faithconnect/internal/pkg/chat/presentation/http"
	confHTTP "github.com/HarichndR/Faithconnect/internal/pkg/conference/presentation/http"
	notifusecase "github.com/HarichndR/Faithconnect/internal/pkg/notification/application/usecase"
	notifHTTP "github.com/HarichndR/Faithconnect/internal/pkg/notification/presentation/http"
	socketHTTP "github.com/HarichndR/Faithconnect/internal/pkg/realtime/presentation/http"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	directory dirport.UserDirectory,
	triggers *notifusecase.SocialTriggers,
	registry *realtime.Registry,
	relay *realtime.Relay,
	log zerolog.Logger,
) {
	group := r.Group("/api/v1")

	chatHTTP.RegisterRoutes(group, pool, directory, triggers, registry, log)
	notifHTTP.RegisterRoutes(group, pool)
	confHTTP.RegisterRoutes(group, pool)
	socketHTTP.RegisterRoutes(group, pool, registry, relay, log)
}
