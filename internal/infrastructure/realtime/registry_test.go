package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	id       string
	userID   string
	sent     [][]byte
	closed   bool
	closeMsg string
}

func (f *fakeSession) SessionID() string { return f.id }
func (f *fakeSession) UserID() string    { return f.userID }
func (f *fakeSession) Send(p []byte) error {
	f.sent = append(f.sent, p)
	return nil
}
func (f *fakeSession) Close(code int, reason string) {
	f.closed = true
	f.closeMsg = reason
}

func TestRegistry_RegisterReplacesPriorSession(t *testing.T) {
	r := NewRegistry()

	first := &fakeSession{id: "s1", userID: "alice"}
	second := &fakeSession{id: "s2", userID: "alice"}

	r.Register(first)
	r.Register(second)

	require.True(t, first.closed)
	require.Equal(t, "session replaced", first.closeMsg)

	s, ok := r.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, "s2", s.SessionID())
	require.Equal(t, 1, r.Count())
}

func TestRegistry_UnregisterOnlyIfCurrent(t *testing.T) {
	r := NewRegistry()

	first := &fakeSession{id: "s1", userID: "alice"}
	second := &fakeSession{id: "s2", userID: "alice"}

	r.Register(first)
	r.Register(second)

	// Late disconnect of the replaced socket must not evict the new one.
	r.Unregister(first)

	_, ok := r.Lookup("alice")
	require.True(t, ok)

	r.Unregister(second)
	_, ok = r.Lookup("alice")
	require.False(t, ok)
}

func TestRegistry_BroadcastExcludesSender(t *testing.T) {
	r := NewRegistry()

	leader := &fakeSession{id: "s1", userID: "leader"}
	viewer := &fakeSession{id: "s2", userID: "viewer"}

	r.Register(leader)
	r.Register(viewer)
	r.JoinRoom("abc123", leader)
	r.JoinRoom("abc123", viewer)

	delivered := r.Broadcast("abc123", []byte("hello"), viewer.SessionID())

	require.Equal(t, 1, delivered)
	require.Len(t, leader.sent, 1)
	require.Empty(t, viewer.sent)
}

func TestRegistry_UnregisterClearsRoomMemberships(t *testing.T) {
	r := NewRegistry()

	viewer := &fakeSession{id: "s1", userID: "viewer"}
	r.Register(viewer)
	r.JoinRoom("abc123", viewer)
	r.Unregister(viewer)

	delivered := r.Broadcast("abc123", []byte("x"), "")
	require.Zero(t, delivered)
}

func TestRegistry_SendToSessionMissingTarget(t *testing.T) {
	r := NewRegistry()
	require.False(t, r.SendToSession("nope", []byte("x")))
	require.False(t, r.SendToUser("nobody", []byte("x")))
}

func TestRegistry_SessionInMultipleRooms(t *testing.T) {
	r := NewRegistry()

	s := &fakeSession{id: "s1", userID: "alice"}
	other := &fakeSession{id: "s2", userID: "bob"}
	r.Register(s)
	r.Register(other)

	r.JoinRoom("room-a", s)
	r.JoinRoom("room-b", s)
	r.JoinRoom("room-a", other)

	require.Equal(t, 1, r.Broadcast("room-a", []byte("a"), s.SessionID()))
	require.Equal(t, 0, r.Broadcast("room-b", []byte("b"), s.SessionID()))

	r.LeaveRoom("room-a", s)
	require.Equal(t, 1, r.Broadcast("room-a", []byte("c"), ""))
}
