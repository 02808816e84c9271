package core

import (
	"sync"
	"time"
)

// Presence tracks which users have live connections. A user is online
// while at least one connection maps to them.
type Presence struct {
	mu       sync.RWMutex
	conns    map[string]map[*Client]struct{}
	lastSeen map[string]time.Time
}

// NewPresence constructs an empty presence registry.
func NewPresence() *Presence {
	return &Presence{
		conns:    make(map[string]map[*Client]struct{}),
		lastSeen: make(map[string]time.Time),
	}
}

// Add binds a connection to a user. Returns true when this is the
// user's first live connection (offline -> online transition).
func (p *Presence) Add(c *Client, userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.conns[userID]
	if !ok {
		set = make(map[*Client]struct{})
		p.conns[userID] = set
		delete(p.lastSeen, userID)
	}
	set[c] = struct{}{}
	return !ok
}

// Remove drops a connection. Returns the bound user and true when this
// was the user's last live connection. Removing an unknown or unbound
// connection is a no-op.
func (p *Presence) Remove(c *Client) (string, bool) {
	if c.UserID == "" {
		return "", false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.conns[c.UserID]
	if !ok {
		return c.UserID, false
	}
	if _, ok := set[c]; !ok {
		return c.UserID, false
	}
	delete(set, c)
	if len(set) > 0 {
		return c.UserID, false
	}
	delete(p.conns, c.UserID)
	p.lastSeen[c.UserID] = time.Now()
	return c.UserID, true
}

// IsOnline reports whether the user has at least one live connection.
func (p *Presence) IsOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns[userID]) > 0
}

// ListOnline returns the identifiers of all online users.
func (p *Presence) ListOnline() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.conns))
	for userID := range p.conns {
		out = append(out, userID)
	}
	return out
}

// LastSeen returns when the user last went offline.
func (p *Presence) LastSeen(userID string) (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ts, ok := p.lastSeen[userID]
	return ts, ok
}

// OfflineSince returns a snapshot of last-seen timestamps for every
// user currently offline.
func (p *Presence) OfflineSince() map[string]time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]time.Time, len(p.lastSeen))
	for userID, ts := range p.lastSeen {
		out[userID] = ts
	}
	return out
}

// Connections returns a snapshot of the user's live connections.
func (p *Presence) Connections(userID string) []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*Client, 0, len(p.conns[userID]))
	for c := range p.conns[userID] {
		out = append(out, c)
	}
	return out
}

// All returns a snapshot of every live connection.
func (p *Presence) All() []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []*Client
	for _, set := range p.conns {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}
