package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

var errSlowConsumer = errors.New("send buffer full")

// Conn wraps one client's websocket with a buffered outbound queue so a
// slow peer never blocks the room.
type Conn struct {
	ws  *websocket.Conn
	out chan []byte
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a WS connection
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws, out: make(chan []byte, 256)}
}

// Read blocks until it receives a text/binary message
// Returns false if connection is closed
func (c *Conn) Read(ctx context.Context) ([]byte, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, false
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return []byte(data), true
		}
	}
}

// WriteLoop sends outbound messages + periodic pings
// Exits when ctx is cancelled
func (c *Conn) WriteLoop(ctx context.Context) {
	p := 20 * time.Second
	t := time.NewTicker(p)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Send queues b for delivery without blocking.
// Returns an error if the peer's buffer is full.
func (c *Conn) Send(b []byte) error {
	select {
	case c.out <- b:
		return nil
	default:
		return errSlowConsumer
	}
}

// Kick closes the connection with the given status code. Closing also
// unblocks a Read in flight on this connection.
func (c *Conn) Kick(code websocket.StatusCode, reason string) {
	_ = c.ws.Close(code, reason)
}

// Close closes the WS connection normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
