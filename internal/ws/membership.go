package ws

import (
	"sync"

	"nhooyr.io/websocket"

	"room-relay/pkg/metrics"
)

// Handle is one client's duplex channel as the registry sees it.
// *Conn satisfies it; tests substitute fakes.
type Handle interface {
	Send(b []byte) error
	Kick(code websocket.StatusCode, reason string)
}

// Membership tracks which handles are joined to which room. A single
// lock serializes every mutation, so updates on one room can never be
// lost to an interleaving.
type Membership struct {
	mu    sync.RWMutex
	rooms map[string]map[Handle]struct{} // room key -> joined handles
}

// NewMembership creates an empty membership registry
func NewMembership() *Membership {
	return &Membership{rooms: map[string]map[Handle]struct{}{}}
}

// Join adds h to the room's set, creating the set if needed.
// Joining twice is a no-op.
func (m *Membership) Join(key string, h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.rooms[key]
	if set == nil {
		set = map[Handle]struct{}{}
		m.rooms[key] = set
	}
	set[h] = struct{}{}
}

// Leave removes h from the room's set and drops the set once empty.
// No-op if the handle or room is already gone.
func (m *Membership) Leave(key string, h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.rooms[key]
	if set == nil {
		return
	}
	delete(set, h)
	if len(set) == 0 {
		delete(m.rooms, key)
	}
}

// Broadcast sends payload to every handle in the room except exclude.
// A failed delivery to one handle is skipped, never propagated.
func (m *Membership) Broadcast(key string, exclude Handle, payload []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for h := range m.rooms[key] {
		if h == exclude {
			continue
		}
		if err := h.Send(payload); err != nil {
			metrics.DroppedDeliveries.Inc()
		}
	}
}

// CloseAll force-closes every handle in the room and removes its entry.
// Used by the sweeper when a room expires.
func (m *Membership) CloseAll(key string) {
	m.mu.Lock()
	set := m.rooms[key]
	delete(m.rooms, key)
	m.mu.Unlock()

	// Close outside the lock: Close writes to the socket.
	for h := range set {
		h.Kick(websocket.StatusNormalClosure, "room expired")
	}
}

// Count returns how many handles are joined to the room
func (m *Membership) Count(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[key])
}
