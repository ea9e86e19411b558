package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/infrastructure/realtime"
	"github.com/HarichndR/Faithconnect/internal/metrics"
	conference "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/domain"
	confusecase "github.com/HarichndR/Faithconnect/internal/pkg/conference/application/usecase"
	confadapter "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/adapter"
	confport "github.com/HarichndR/Faithconnect/internal/pkg/conference/persistence/repository/port"
)

// SocketGatewayController owns the single websocket endpoint. One connection
// per user carries everything: notification pushes, message pushes, room
// membership and conference signaling.
type SocketGatewayController struct {
	registry *realtime.Registry
	relay    *realtime.Relay
	getConf  *confusecase.GetConferenceUseCase
	confRepo confport.ConferenceRepository
	log      zerolog.Logger

	inflightTimeout time.Duration
}

func NewSocketGatewayController(pool *pgxpool.Pool, registry *realtime.Registry, relay *realtime.Relay, log zerolog.Logger) *SocketGatewayController {
	repo := confadapter.NewPgConferenceRepository(pool)
	return &SocketGatewayController{
		registry:        registry,
		relay:           relay,
		getConf:         confusecase.NewGetConferenceUseCase(repo),
		confRepo:        repo,
		log:             log,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type inboundFrame struct {
	Type   string          `json:"type"`
	UserID string          `json:"userId,omitempty"`
	RoomID string          `json:"roomId,omitempty"`
	To     string          `json:"to,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects.
func (ctl *SocketGatewayController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			ctl.log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()
		ctl.registry.Register(conn)
		metrics.LiveConnections.Inc()
		defer func() {
			ctl.registry.Unregister(conn)
			metrics.LiveConnections.Dec()
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.log.Debug().Err(err).Str("user", userID).Msg("websocket read ended")
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(conn, frame)
			case "join-conference":
				ctl.handleJoinConference(c, conn, frame)
			case "leave-conference":
				ctl.handleLeaveConference(conn, frame)
			case "signal":
				ctl.handleSignal(conn, frame)
			case "end-stream":
				ctl.handleEndStream(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// handleJoin confirms the presence bind. The session was already attached to
// its user at upgrade time, so the frame changes no state; a userId naming a
// different user is rejected. Conference membership is never granted here,
// it only flows through handleJoinConference.
func (ctl *SocketGatewayController) handleJoin(conn *realtime.Connection, frame inboundFrame) {
	if frame.UserID != "" && frame.UserID != conn.UserID() {
		ctl.replyError(conn, "user_mismatch", "session is bound to a different user")
		return
	}
	ctl.ack(conn, "joined", "")
}

func (ctl *SocketGatewayController) handleJoinConference(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	room, err := ctl.getConf.Execute(ctx, frame.RoomID)
	if err != nil {
		if errors.Is(err, conference.ErrNotFound) {
			ctl.replyError(conn, "not_found", "conference not found")
			return
		}
		ctl.replyError(conn, "internal_error", "conference lookup failed")
		return
	}
	if !room.IsActive() {
		ctl.replyError(conn, "conference_ended", "conference already ended")
		return
	}

	ctl.relay.JoinRoom(frame.RoomID, conn)
	if err := ctl.confRepo.AddViewer(ctx, room.ID, conn.UserID()); err != nil {
		ctl.log.Warn().Err(err).Str("room", frame.RoomID).Msg("viewer record failed")
	}
	ctl.ack(conn, "conference-joined", frame.RoomID)
}

func (ctl *SocketGatewayController) handleLeaveConference(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}
	ctl.relay.LeaveRoom(frame.RoomID, conn)
	ctl.ack(conn, "conference-left", frame.RoomID)
}

func (ctl *SocketGatewayController) handleSignal(conn *realtime.Connection, frame inboundFrame) {
	if frame.To == "" || len(frame.Signal) == 0 {
		ctl.replyError(conn, "bad_request", "to and signal are required")
		return
	}
	ctl.relay.RelaySignal(conn, frame.To, frame.Signal)
}

func (ctl *SocketGatewayController) handleEndStream(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}
	ctl.relay.EndStream(frame.RoomID, conn)
}

func (ctl *SocketGatewayController) ack(conn *realtime.Connection, ackType, roomID string) {
	if payload, err := json.Marshal(ackFrame{Type: ackType, RoomID: roomID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocketGatewayController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
