package realtime

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/HarichndR/Faithconnect/internal/metrics"
)

// Relay moves conference signaling between sessions sharing a room. Payloads
// are opaque to it: offers, answers and candidates pass through untouched,
// shaped only by a thin event envelope.
type Relay struct {
	registry *Registry
	log      zerolog.Logger
}

func NewRelay(registry *Registry, log zerolog.Logger) *Relay {
	return &Relay{registry: registry, log: log}
}

type viewerJoinedEvent struct {
	Type     string `json:"type"`
	SocketID string `json:"socketId"`
	UserID   string `json:"userId"`
}

type signalEvent struct {
	Type     string          `json:"type"`
	SocketID string          `json:"socketId"`
	Signal   json.RawMessage `json:"signal"`
}

type streamEndedEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// JoinRoom adds the session to the room and announces it to everyone already
// there, so existing peers can initiate signaling toward the newcomer.
func (r *Relay) JoinRoom(roomID string, s Session) {
	r.registry.JoinRoom(roomID, s)
	metrics.ConferenceJoins.Inc()

	payload, err := json.Marshal(viewerJoinedEvent{
		Type:     "viewer-joined",
		SocketID: s.SessionID(),
		UserID:   s.UserID(),
	})
	if err != nil {
		r.log.Error().Err(err).Msg("viewer-joined encode failed")
		return
	}
	r.registry.Broadcast(roomID, payload, s.SessionID())
}

// LeaveRoom detaches the session from the room. Peers notice through their
// own signaling channels; no room-wide event is emitted.
func (r *Relay) LeaveRoom(roomID string, s Session) {
	r.registry.LeaveRoom(roomID, s)
}

// RelaySignal forwards an opaque signaling payload to one target session.
// A missing target (disconnected or never existed) drops the signal without
// feedback; peers discover dead connections through their own channels.
func (r *Relay) RelaySignal(from Session, targetSessionID string, signal json.RawMessage) {
	payload, err := json.Marshal(signalEvent{
		Type:     "signal",
		SocketID: from.SessionID(),
		Signal:   signal,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("signal encode failed")
		return
	}
	if r.registry.SendToSession(targetSessionID, payload) {
		metrics.SignalsRelayed.Inc()
	}
}

// EndStream announces to the whole room that the broadcast is over. The
// sender already knows; everyone else gets stream-ended.
func (r *Relay) EndStream(roomID string, s Session) {
	payload, err := json.Marshal(streamEndedEvent{
		Type:   "stream-ended",
		RoomID: roomID,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("stream-ended encode failed")
		return
	}
	r.registry.Broadcast(roomID, payload, s.SessionID())
}
