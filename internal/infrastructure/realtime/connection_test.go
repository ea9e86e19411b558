package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// newServerConnection upgrades a loopback websocket and returns the wrapped
// server side. The client end is drained in the background so server writes
// never block.
func newServerConnection(t *testing.T) *Connection {
	t.Helper()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *Connection, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection("user-1", ws)
		conn.Start()
		connCh <- conn
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case conn := <-connCh:
		t.Cleanup(func() { conn.Close(websocket.CloseNormalClosure, "test done") })
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("websocket connection was not established")
		return nil
	}
}

func TestConnection_SendDuringCloseDoesNotPanic(t *testing.T) {
	conn := newServerConnection(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = conn.Send([]byte(`{"type":"noop"}`))
			}
		}()
	}
	conn.Close(websocket.CloseNormalClosure, "shutting down")
	wg.Wait()
}

func TestConnection_SendAfterCloseReturnsError(t *testing.T) {
	conn := newServerConnection(t)

	require.NoError(t, conn.Send([]byte(`{"type":"noop"}`)))
	conn.Close(websocket.CloseNormalClosure, "done")
	require.ErrorIs(t, conn.Send([]byte(`{"type":"late"}`)), ErrConnectionClosed)
}
