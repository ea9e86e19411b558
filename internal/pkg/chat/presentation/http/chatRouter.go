package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/pkg/chat/application/usecase"
	"github.com/HarichndR/Faithconnect/internal/pkg/chat/presentation/controller"
	dirport "github.com/HarichndR/Faithconnect/internal/repository/port"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	directory dirport.UserDirectory,
	notifier usecase.Notifier,
	live usecase.LivePusher,
	log zerolog.Logger,
) {
	startCtl := controller.NewStartConversationController(pool)
	listCtl := controller.NewListConversationsController(pool)
	messagesCtl := controller.NewListMessagesController(pool)
	sendCtl := controller.NewSendMessageController(pool, directory, notifier, live, log)
	readCtl := controller.NewMarkReadController(pool)

	// POST /api/v1/chat -> open (or find) the conversation with another user
	g.POST("/chat", startCtl.Handle())

	// GET /api/v1/chat -> list the caller's conversations with unread counts
	g.GET("/chat", listCtl.Handle())

	// GET /api/v1/chat/:chatId/messages -> fetch history for a participant
	g.GET("/chat/:chatId/messages", messagesCtl.Handle())

	// POST /api/v1/chat/:chatId/messages -> append a message
	g.POST("/chat/:chatId/messages", sendCtl.Handle())

	// POST /api/v1/chat/:chatId/read -> acknowledge everything in the thread
	g.POST("/chat/:chatId/read", readCtl.Handle())
}
