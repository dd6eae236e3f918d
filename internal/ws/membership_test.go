package ws

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type fakeHandle struct {
	mu      sync.Mutex
	got     [][]byte
	kicks   []websocket.StatusCode
	failing bool
}

func (f *fakeHandle) Send(b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("handle closed")
	}
	f.got = append(f.got, b)
	return nil
}

func (f *fakeHandle) Kick(code websocket.StatusCode, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicks = append(f.kicks, code)
}

func (f *fakeHandle) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got
}

func TestMembership_JoinIsIdempotent(t *testing.T) {
	m := NewMembership()
	h := &fakeHandle{}

	m.Join("r", h)
	m.Join("r", h)

	require.Equal(t, 1, m.Count("r"))
}

func TestMembership_LeaveTwiceAndEmptySetRemoved(t *testing.T) {
	m := NewMembership()
	h := &fakeHandle{}

	m.Join("r", h)
	m.Leave("r", h)
	m.Leave("r", h) // second leave is a no-op

	require.Equal(t, 0, m.Count("r"))
	require.NotContains(t, m.rooms, "r")
}

func TestMembership_LeaveUnknownRoomIsNoop(t *testing.T) {
	m := NewMembership()
	m.Leave("ghost", &fakeHandle{})
	require.Equal(t, 0, m.Count("ghost"))
}

func TestMembership_BroadcastExcludesSender(t *testing.T) {
	m := NewMembership()
	a, b, c := &fakeHandle{}, &fakeHandle{}, &fakeHandle{}
	m.Join("r", a)
	m.Join("r", b)
	m.Join("r", c)

	payload := []byte(`{"type":"offer"}`)
	m.Broadcast("r", a, payload)

	require.Empty(t, a.received())
	require.Equal(t, [][]byte{payload}, b.received())
	require.Equal(t, [][]byte{payload}, c.received())
}

func TestMembership_BroadcastSurvivesFailedDelivery(t *testing.T) {
	m := NewMembership()
	dead := &fakeHandle{failing: true}
	live := &fakeHandle{}
	m.Join("r", dead)
	m.Join("r", live)

	m.Broadcast("r", nil, []byte("hello"))

	require.Equal(t, [][]byte{[]byte("hello")}, live.received())
}

func TestMembership_CloseAllKicksWithNormalClosure(t *testing.T) {
	m := NewMembership()
	a, b := &fakeHandle{}, &fakeHandle{}
	m.Join("r", a)
	m.Join("r", b)

	m.CloseAll("r")

	require.Equal(t, 0, m.Count("r"))
	require.Equal(t, []websocket.StatusCode{websocket.StatusNormalClosure}, a.kicks)
	require.Equal(t, []websocket.StatusCode{websocket.StatusNormalClosure}, b.kicks)

	// Closing an already-removed room is a no-op.
	m.CloseAll("r")
	require.Equal(t, 1, len(a.kicks))
}
