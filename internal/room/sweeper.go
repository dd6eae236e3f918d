package room

import (
	"context"
	"log/slog"
	"time"

	"room-relay/pkg/metrics"
)

// MembershipCloser force-closes every connection still attached to a
// room. Implemented by the ws membership registry; kept narrow so this
// package does not depend on the transport.
type MembershipCloser interface {
	CloseAll(key string)
}

// Sweeper evicts idle rooms on a fixed interval and disconnects any
// clients still attached to them.
type Sweeper struct {
	log      *slog.Logger
	rooms    *Registry
	members  MembershipCloser
	ttl      time.Duration
	interval time.Duration
}

// NewSweeper wires the sweeper against the room registry and membership
func NewSweeper(logger *slog.Logger, rooms *Registry, members MembershipCloser, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{log: logger, rooms: rooms, members: members, ttl: ttl, interval: interval}
}

// Run loops until ctx is cancelled. Started once at process startup.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep runs one eviction pass at instant now
func (s *Sweeper) Sweep(now time.Time) {
	for _, key := range s.rooms.EvictExpired(now, s.ttl) {
		s.members.CloseAll(key)
		metrics.RoomsEvicted.Inc()
		s.log.Debug("room.evicted", "key", key)
	}
}
