package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/HarichndR/Faithconnect/internal/infrastructure/realtime"
)

// gatewayHarness serves the socket gateway on a test listener. The conference
// lookups behind join-conference need a database, so these tests stick to the
// frames that never reach storage.
type gatewayHarness struct {
	registry *realtime.Registry
	server   *httptest.Server
}

func newGatewayHarness(t *testing.T) *gatewayHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry()
	relay := realtime.NewRelay(registry, zerolog.Nop())
	ctl := NewSocketGatewayController(nil, registry, relay, zerolog.Nop())

	r := gin.New()
	r.GET("/ws", ctl.Handle())
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	t.Cleanup(registry.Close)

	return &gatewayHarness{registry: registry, server: server}
}

func (h *gatewayHarness) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws?user_id=" + userID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	frame := readFrame(t, ws)
	require.Equal(t, "connected", frame["type"])
	return ws
}

func readFrame(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func writeFrame(t *testing.T, ws *websocket.Conn, frame map[string]any) {
	t.Helper()
	data, err := json.Marshal(frame)
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, data))
}

func TestJoin_ConfirmsPresenceBind(t *testing.T) {
	h := newGatewayHarness(t)
	ws := h.dial(t, "alice")

	writeFrame(t, ws, map[string]any{"type": "join", "userId": "alice"})
	ack := readFrame(t, ws)
	require.Equal(t, "joined", ack["type"])

	_, online := h.registry.Lookup("alice")
	require.True(t, online)
}

func TestJoin_RejectsForeignUserID(t *testing.T) {
	h := newGatewayHarness(t)
	ws := h.dial(t, "alice")

	writeFrame(t, ws, map[string]any{"type": "join", "userId": "mallory"})
	reply := readFrame(t, ws)
	require.Equal(t, "error", reply["type"])
	require.Equal(t, "user_mismatch", reply["code"])
}

func TestJoin_NeverGrantsRoomMembership(t *testing.T) {
	h := newGatewayHarness(t)
	ws := h.dial(t, "alice")

	writeFrame(t, ws, map[string]any{"type": "join", "roomId": "conf-1"})
	ack := readFrame(t, ws)
	require.Equal(t, "joined", ack["type"])
	require.NotContains(t, ack, "roomId")

	delivered := h.registry.Broadcast("conf-1", []byte(`{"type":"stream-ended"}`), "")
	require.Zero(t, delivered)
}
