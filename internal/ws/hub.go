package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"nhooyr.io/websocket"

	"room-relay/internal/room"
	"room-relay/pkg/metrics"
)

// Hub runs the relay loop for every websocket connection: it validates
// the target room, tracks membership, and fans inbound payloads out to
// the room. Signaling messages (anything that parses as JSON) are
// forwarded verbatim to the other members; everything else is chat and
// is delivered with "me: "/"other: " prefixes.
type Hub struct {
	log     *slog.Logger
	rooms   *room.Registry
	members *Membership
}

// NewHub wires the hub against the room registry + membership
func NewHub(logger *slog.Logger, rooms *room.Registry, members *Membership) *Hub {
	return &Hub{log: logger, rooms: rooms, members: members}
}

// ServeWS handles a new /ws/{key} connection
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "room key required", http.StatusBadRequest)
		return
	}

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}
	c := NewConn(conn)

	// Touch doubles as the existence check: joining refreshes the
	// room's activity, and an evicted room can't be re-touched.
	if !h.rooms.Touch(key) {
		h.log.Debug("ws.reject", "key", key)
		c.Kick(websocket.StatusPolicyViolation, "room not found or expired")
		return
	}

	h.members.Join(key, c)
	metrics.OpenConnections.Inc()
	h.log.Debug("ws.join", "key", key, "members", h.members.Count(key))

	// Leave must run exactly once on every exit path, including a
	// forced close by the sweeper racing a client disconnect.
	defer func() {
		h.members.Leave(key, c)
		metrics.OpenConnections.Dec()
		_ = c.Close()
		h.log.Debug("ws.leave", "key", key, "members", h.members.Count(key))
	}()

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound reader: classify by parse success and fan out
	for {
		payload, ok := c.Read(ctx)
		if !ok {
			return
		}

		if json.Valid(payload) {
			// Raw bytes, not re-serialized: wire content must
			// reach the peers untouched.
			h.members.Broadcast(key, c, payload)
			metrics.MessagesRelayed.WithLabelValues("signal").Inc()
		} else {
			if err := c.Send(append([]byte("me: "), payload...)); err != nil {
				metrics.DroppedDeliveries.Inc()
			}
			h.members.Broadcast(key, c, append([]byte("other: "), payload...))
			metrics.MessagesRelayed.WithLabelValues("chat").Inc()
		}

		h.rooms.Touch(key)
	}
}
