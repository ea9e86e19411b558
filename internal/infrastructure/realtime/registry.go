package realtime

import (
	"sync"
)

// Registry tracks which user currently holds a live session and which
// conference rooms each session has joined. It is constructed once per
// process and injected into the components that push to clients.
//
// One active session per user is the modeled behavior: attaching a new
// session replaces and closes the previous one. Multi-device fan-out and
// multi-process presence both need an external shared layer and are out of
// scope here.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]Session            // sessionID -> session
	userSessions map[string]string             // userID -> sessionID
	rooms        map[string]map[string]Session // roomID -> sessionID -> session
	sessionRooms map[string]map[string]struct{} // sessionID -> set of roomIDs
}

// NewRegistry constructs an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions:     make(map[string]Session),
		userSessions: make(map[string]string),
		rooms:        make(map[string]map[string]Session),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Register binds a session to its user. A previous session for the same user
// is removed and closed after the swap to enforce one active socket per user.
func (r *Registry) Register(s Session) {
	var previous Session

	r.mu.Lock()
	if existingID, ok := r.userSessions[s.UserID()]; ok {
		if existing := r.sessions[existingID]; existing != nil {
			previous = existing
			r.removeLocked(existingID)
		}
	}

	r.sessions[s.SessionID()] = s
	r.userSessions[s.UserID()] = s.SessionID()
	r.sessionRooms[s.SessionID()] = make(map[string]struct{})
	r.mu.Unlock()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Unregister removes a session if it is still tracked, clearing its room
// memberships. Registering a newer session for the same user already removed
// the old one, so a late disconnect of the replaced socket is a no-op.
func (r *Registry) Unregister(s Session) {
	r.mu.Lock()
	r.removeLocked(s.SessionID())
	r.mu.Unlock()
}

// Lookup returns the live session of the given user, if any.
func (r *Registry) Lookup(userID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.userSessions[userID]
	if !ok {
		return nil, false
	}
	s := r.sessions[sessionID]
	return s, s != nil
}

// Get returns a session by its session id, for direct addressing.
func (r *Registry) Get(sessionID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	return s, ok
}

// JoinRoom adds the session to the room's membership group. A session may
// belong to several rooms at once.
func (r *Registry) JoinRoom(roomID string, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.SessionID()]; !ok {
		return
	}

	room := r.rooms[roomID]
	if room == nil {
		room = make(map[string]Session)
		r.rooms[roomID] = room
	}
	room[s.SessionID()] = s

	memberships := r.sessionRooms[s.SessionID()]
	if memberships == nil {
		memberships = make(map[string]struct{})
		r.sessionRooms[s.SessionID()] = memberships
	}
	memberships[roomID] = struct{}{}
}

// LeaveRoom removes the session from the room.
func (r *Registry) LeaveRoom(roomID string, s Session) {
	r.mu.Lock()
	r.leaveLocked(roomID, s.SessionID())
	r.mu.Unlock()
}

// Broadcast writes payload to all members of the room except the session
// identified by excludeSessionID (when non-empty). It returns the number of
// sessions the payload was handed to.
func (r *Registry) Broadcast(roomID string, payload []byte, excludeSessionID string) int {
	r.mu.RLock()
	room := r.rooms[roomID]
	members := make([]Session, 0, len(room))
	for id, s := range room {
		if id == excludeSessionID {
			continue
		}
		members = append(members, s)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, s := range members {
		if err := s.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// SendToUser delivers payload to the current session of the given user.
// It reports whether a live session accepted the payload.
func (r *Registry) SendToUser(userID string, payload []byte) bool {
	s, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	return s.Send(payload) == nil
}

// SendToSession delivers payload to a specific session by id. Delivery to a
// session that no longer exists silently fails; the protocol is real-time
// only, not queued.
func (r *Registry) SendToSession(sessionID string, payload []byte) bool {
	s, ok := r.Get(sessionID)
	if !ok {
		return false
	}
	return s.Send(payload) == nil
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close terminates all tracked sessions and clears registry state.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]Session)
	r.userSessions = make(map[string]string)
	r.rooms = make(map[string]map[string]Session)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close(1001, "registry shutdown")
	}
}

func (r *Registry) removeLocked(sessionID string) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if current, ok := r.userSessions[s.UserID()]; ok && current == sessionID {
		delete(r.userSessions, s.UserID())
	}

	for roomID := range r.sessionRooms[sessionID] {
		r.leaveLocked(roomID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Registry) leaveLocked(roomID string, sessionID string) {
	room := r.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, roomID)
		if len(memberships) == 0 {
			delete(r.sessionRooms, sessionID)
		}
	}
}
