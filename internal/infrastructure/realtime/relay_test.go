package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func relaySetup() (*Registry, *Relay) {
	r := NewRegistry()
	return r, NewRelay(r, zerolog.Nop())
}

func decodeFrame(t *testing.T, payload []byte) map[string]any {
	t.Helper()
	var frame map[string]any
	require.NoError(t, json.Unmarshal(payload, &frame))
	return frame
}

func TestRelay_JoinRoomAnnouncesToOthersOnly(t *testing.T) {
	reg, relay := relaySetup()

	leader := &fakeSession{id: "s1", userID: "leader"}
	viewer := &fakeSession{id: "s2", userID: "viewer"}
	reg.Register(leader)
	reg.Register(viewer)

	relay.JoinRoom("room-1", leader)
	require.Empty(t, leader.sent)

	relay.JoinRoom("room-1", viewer)
	require.Empty(t, viewer.sent)
	require.Len(t, leader.sent, 1)

	frame := decodeFrame(t, leader.sent[0])
	require.Equal(t, "viewer-joined", frame["type"])
	require.Equal(t, "s2", frame["socketId"])
	require.Equal(t, "viewer", frame["userId"])
}

func TestRelay_SignalGoesOnlyToTarget(t *testing.T) {
	reg, relay := relaySetup()

	a := &fakeSession{id: "s1", userID: "alice"}
	b := &fakeSession{id: "s2", userID: "bob"}
	c := &fakeSession{id: "s3", userID: "carol"}
	reg.Register(a)
	reg.Register(b)
	reg.Register(c)
	relay.JoinRoom("room-1", a)
	relay.JoinRoom("room-1", b)
	relay.JoinRoom("room-1", c)

	offer := json.RawMessage(`{"sdp":"v=0...","type":"offer"}`)
	relay.RelaySignal(a, "s2", offer)

	require.Len(t, b.sent, 2) // viewer-joined for c, then the signal
	frame := decodeFrame(t, b.sent[1])
	require.Equal(t, "signal", frame["type"])
	require.Equal(t, "s1", frame["socketId"])

	var ev signalEvent
	require.NoError(t, json.Unmarshal(b.sent[1], &ev))
	require.JSONEq(t, string(offer), string(ev.Signal))

	// c saw nothing beyond membership traffic.
	for _, p := range c.sent {
		require.NotEqual(t, "signal", decodeFrame(t, p)["type"])
	}
}

func TestRelay_SignalToMissingTargetIsSilentlyDropped(t *testing.T) {
	reg, relay := relaySetup()

	a := &fakeSession{id: "s1", userID: "alice"}
	reg.Register(a)
	relay.JoinRoom("room-1", a)

	require.NotPanics(t, func() {
		relay.RelaySignal(a, "gone", json.RawMessage(`{"type":"offer"}`))
	})
	require.Empty(t, a.sent)
}

func TestRelay_EndStreamReachesRoomExceptSender(t *testing.T) {
	reg, relay := relaySetup()

	leader := &fakeSession{id: "s1", userID: "leader"}
	v1 := &fakeSession{id: "s2", userID: "v1"}
	v2 := &fakeSession{id: "s3", userID: "v2"}
	outsider := &fakeSession{id: "s4", userID: "outsider"}
	reg.Register(leader)
	reg.Register(v1)
	reg.Register(v2)
	reg.Register(outsider)
	relay.JoinRoom("room-1", leader)
	relay.JoinRoom("room-1", v1)
	relay.JoinRoom("room-1", v2)

	before := len(leader.sent)
	relay.EndStream("room-1", leader)

	require.Len(t, leader.sent, before)
	last := decodeFrame(t, v1.sent[len(v1.sent)-1])
	require.Equal(t, "stream-ended", last["type"])
	require.Equal(t, "room-1", last["roomId"])
	last = decodeFrame(t, v2.sent[len(v2.sent)-1])
	require.Equal(t, "stream-ended", last["type"])
	require.Empty(t, outsider.sent)
}

func TestRelay_LeaveRoomStopsDelivery(t *testing.T) {
	reg, relay := relaySetup()

	a := &fakeSession{id: "s1", userID: "alice"}
	b := &fakeSession{id: "s2", userID: "bob"}
	reg.Register(a)
	reg.Register(b)
	relay.JoinRoom("room-1", a)
	relay.JoinRoom("room-1", b)

	relay.LeaveRoom("room-1", b)
	sent := len(b.sent)
	relay.EndStream("room-1", a)
	require.Len(t, b.sent, sent)
}
