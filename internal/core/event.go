package core

import "time"

// EventKind is a notification the hub emits to client connections.
type EventKind int

const (
	// EventMessage delivers a relayed chat message.
	EventMessage EventKind = iota
	// EventTyping relays an ephemeral typing indicator.
	EventTyping
	// EventOnline notifies that a user came online.
	EventOnline
	// EventOffline notifies that a user went offline.
	EventOffline
	// EventHistory delivers room history to a client upon joining.
	EventHistory
)

// Event is sent to client connections to describe what happened.
type Event struct {
	Kind     EventKind
	User     string    // subject of online/offline/typing events
	Room     string    // set for history events
	Typing   bool      // set for typing events
	LastSeen time.Time // set for offline events
	Message  Message   // set for message events
	Messages []Message // set for history events
}
