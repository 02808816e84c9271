package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recorder receives relayed messages for best-effort archival. The hub
// never blocks on it; see Run.
type Recorder interface {
	Record(ctx context.Context, msg Message) error
}

// Hub is the relay instance owning presence, room membership, and
// per-room histories. One hub serves many concurrent connections;
// every method is safe for concurrent use.
type Hub struct {
	presence *Presence
	members  *Membership

	mu    sync.RWMutex
	rooms map[string]*room

	recorder Recorder
	recordCh chan Message
	log      *zerolog.Logger
}

// NewHub constructs a relay hub. recorder may be nil to disable
// archival.
func NewHub(recorder Recorder, logger *zerolog.Logger) *Hub {
	return &Hub{
		presence: NewPresence(),
		members:  NewMembership(),
		rooms:    make(map[string]*room),
		recorder: recorder,
		recordCh: make(chan Message, 256),
		log:      logger,
	}
}

// Run drains the archive queue until ctx is cancelled. Messages are
// recorded off the relay path; a full queue drops writes rather than
// stalling a send.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case msg := <-h.recordCh:
			if h.recorder == nil {
				continue
			}
			if err := h.recorder.Record(ctx, msg); err != nil && h.log != nil {
				h.log.Warn().Err(err).Str("message_id", msg.ID).Msg("archive write failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

// Register binds a connection to a user. The first live connection for
// a user marks them online and notifies all other connected parties.
func (h *Hub) Register(c *Client, userID string) {
	c.UserID = userID
	first := h.presence.Add(c, userID)
	if !first {
		return
	}
	if h.log != nil {
		h.log.Debug().Str("user_id", userID).Msg("user online")
	}
	h.broadcastPresence(EventOnline, userID)
}

// Unregister drops a connection. When the user's last connection
// closes, their room mapping is cleared and a single offline event
// fires. Unregistering an unknown connection is a no-op.
func (h *Hub) Unregister(c *Client) {
	userID, last := h.presence.Remove(c)
	if !last {
		return
	}
	h.members.Forget(userID)
	if h.log != nil {
		h.log.Debug().Str("user_id", userID).Msg("user offline")
	}
	h.broadcastPresence(EventOffline, userID)
}

// JoinRoom sets the user's active room and returns the room's history
// snapshot for the backlog reply.
func (h *Hub) JoinRoom(userID, roomID string) []Message {
	h.members.Join(userID, roomID)
	return h.History(roomID)
}

// LeaveRoom clears the user's active room if it matches roomID.
func (h *Hub) LeaveRoom(userID, roomID string) {
	h.members.Leave(userID, roomID)
}

// CurrentRoom returns the user's active room, if any.
func (h *Hub) CurrentRoom(userID string) (string, bool) {
	return h.members.CurrentRoom(userID)
}

// IsOnline reports whether the user has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	return h.presence.IsOnline(userID)
}

// ListOnline returns all online user identifiers.
func (h *Hub) ListOnline() []string {
	return h.presence.ListOnline()
}

// LastSeen returns when the user last went offline.
func (h *Hub) LastSeen(userID string) (time.Time, bool) {
	return h.presence.LastSeen(userID)
}

// OfflineSince returns last-seen timestamps for users currently offline.
func (h *Hub) OfflineSince() map[string]time.Time {
	return h.presence.OfflineSince()
}

// Send stamps, stores, and fans out a message. The message is appended
// to the canonical room for the participant pair and delivered to every
// live connection of the recipient, plus echoed to the sender's own
// connections so other open sessions stay in sync. A recipient with no
// live connection is not an error; the message is stored and served on
// the next join.
func (h *Hub) Send(senderID, recipientID, content string, class MessageClass, tr *Translation) Message {
	roomID := CanonicalRoomID(senderID, recipientID)
	msg := Message{
		ID:          uuid.NewString(),
		Room:        roomID,
		From:        senderID,
		To:          recipientID,
		Content:     content,
		Class:       class,
		Translation: tr,
		CreatedAt:   time.Now(),
	}

	targets := make(map[*Client]struct{})
	for _, c := range h.presence.Connections(recipientID) {
		targets[c] = struct{}{}
	}
	for _, c := range h.presence.Connections(senderID) {
		targets[c] = struct{}{}
	}

	// Append and enqueue under the room lock so concurrent sends from
	// either end reach every observer in append order.
	r := h.room(roomID)
	r.mu.Lock()
	r.history = append(r.history, msg)
	ev := &Event{Kind: EventMessage, Message: msg}
	for c := range targets {
		if !c.Deliver(ev) && h.log != nil {
			h.log.Warn().Str("conn_id", c.ID).Str("message_id", msg.ID).Msg("dropped message for slow consumer")
		}
	}
	r.mu.Unlock()

	if h.recorder != nil {
		select {
		case h.recordCh <- msg:
		default:
			if h.log != nil {
				h.log.Warn().Str("message_id", msg.ID).Msg("archive queue full, dropping write")
			}
		}
	}

	return msg
}

// SetTyping forwards an ephemeral typing indicator to the recipient's
// live connections. Nothing is stored; last write wins.
func (h *Hub) SetTyping(userID, recipientID string, isTyping bool) {
	ev := &Event{Kind: EventTyping, User: userID, Typing: isTyping}
	for _, c := range h.presence.Connections(recipientID) {
		c.Deliver(ev)
	}
}

// History returns a point-in-time copy of the room's message list.
func (h *Hub) History(roomID string) []Message {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return r.snapshot()
}

// broadcastPresence notifies every connection not belonging to userID.
// Offline events carry the user's last-seen timestamp.
func (h *Hub) broadcastPresence(kind EventKind, userID string) {
	ev := &Event{Kind: kind, User: userID}
	if kind == EventOffline {
		ev.LastSeen, _ = h.presence.LastSeen(userID)
	}
	for _, c := range h.presence.All() {
		if c.UserID == userID {
			continue
		}
		c.Deliver(ev)
	}
}

// room returns the room for id, creating it on first use.
func (h *Hub) room(id string) *room {
	h.mu.RLock()
	r, ok := h.rooms[id]
	h.mu.RUnlock()
	if ok {
		return r
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok = h.rooms[id]; ok {
		return r
	}
	r = newRoom(id)
	h.rooms[id] = r
	return r
}
