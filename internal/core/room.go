package core

import "sync"

// CanonicalRoomID derives the room identifier for a pair of users.
// The pair is sorted so both participants resolve to the same room
// regardless of who initiates the conversation.
func CanonicalRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "chat_" + a + "_" + b
}

// room holds the append-only message history for one conversation.
// History grows unbounded for the life of the process.
type room struct {
	id string

	mu      sync.Mutex
	history []Message
}

func newRoom(id string) *room {
	return &room{id: id}
}

// snapshot returns a copy of the history so callers never observe
// concurrent appends.
func (r *room) snapshot() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.history))
	copy(out, r.history)
	return out
}
