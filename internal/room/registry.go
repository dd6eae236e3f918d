package room

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found or expired")
)

// Registry maps room keys to their last-activity timestamp.
// It is the source of truth for room existence and expiry.
type Registry struct {
	mu         sync.Mutex
	lastActive map[string]time.Time // room key -> last activity
	now        func() time.Time
}

// NewRegistry creates an empty registry using the wall clock
func NewRegistry() *Registry {
	return &Registry{lastActive: map[string]time.Time{}, now: time.Now}
}

// NewRegistryWithClock is NewRegistry with an injectable clock for tests
func NewRegistryWithClock(now func() time.Time) *Registry {
	return &Registry{lastActive: map[string]time.Time{}, now: now}
}

// Create inserts a fresh room keyed by key.
// Returns ErrRoomExists if the key is already taken.
func (r *Registry) Create(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lastActive[key]; ok {
		return ErrRoomExists
	}
	r.lastActive[key] = r.now()
	return nil
}

// Touch refreshes the room's activity timestamp.
// Returns false without mutating anything if the room is unknown.
func (r *Registry) Touch(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lastActive[key]; !ok {
		return false
	}
	r.lastActive[key] = r.now()
	return true
}

// Exists reports whether the room is currently registered
func (r *Registry) Exists(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lastActive[key]
	return ok
}

// EvictExpired removes every room idle for longer than ttl at instant
// now and returns the evicted keys in unspecified order.
func (r *Registry) EvictExpired(now time.Time, ttl time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for key, last := range r.lastActive {
		if now.Sub(last) > ttl {
			delete(r.lastActive, key)
			evicted = append(evicted, key)
		}
	}
	return evicted
}

// Len returns the number of live rooms
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lastActive)
}
