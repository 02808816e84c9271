package core

import "sync"

// Membership maps each user to their single active room. Joining a new
// room supersedes the previous mapping; the product issues one join per
// navigation event, so a richer multi-room model is not needed here.
type Membership struct {
	mu     sync.RWMutex
	active map[string]string
}

// NewMembership constructs an empty membership tracker.
func NewMembership() *Membership {
	return &Membership{active: make(map[string]string)}
}

// Join sets the user's active room, superseding any prior mapping.
func (m *Membership) Join(userID, roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[userID] = roomID
}

// Leave clears the mapping only if it currently equals roomID. Stale
// leaves for a room the user already left are no-ops.
func (m *Membership) Leave(userID, roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[userID] == roomID {
		delete(m.active, userID)
	}
}

// CurrentRoom returns the user's active room, if any.
func (m *Membership) CurrentRoom(userID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roomID, ok := m.active[userID]
	return roomID, ok
}

// Forget drops the user's mapping unconditionally, used when the last
// connection for a user closes.
func (m *Membership) Forget(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, userID)
}
