package core

// Client is one live transport connection as seen by the hub.
// UserID stays empty until the connection identifies itself; it is
// written exactly once by Hub.Register and immutable afterwards.
type Client struct {
	ID     string
	UserID string
	Events chan *Event
}

// eventBufferSize bounds how many undelivered events one connection may
// queue before Deliver starts dropping. It must absorb a message burst
// while the write loop drains; a dropped chat message only reappears on
// the next room join.
const eventBufferSize = 64

// NewClient constructs an unbound connection handle.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, eventBufferSize),
	}
}

// Deliver enqueues an event without blocking. Returns false when the
// buffer is full and the event was dropped.
func (c *Client) Deliver(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		// Drop if slow consumer.
		return false
	}
}
