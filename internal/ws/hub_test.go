package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"team-formation/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeConn struct {
	mu     sync.Mutex
	writes []frame
	closed chan struct{}
	once   sync.Once
}

type frame struct {
	kind int
	data []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) WriteMessage(kind int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, frame{kind: kind, data: append([]byte(nil), data...)})
	return nil
}

func (f *fakeConn) SetReadLimit(int64)                {}
func (f *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) frames() []frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]frame(nil), f.writes...)
}

func startHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	return hub, func() {
		cancel()
		<-stopped
	}
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	defer stop()

	a := NewClient(hub, newFakeConn())
	b := NewClient(hub, newFakeConn())
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte(`{"type":"team_committed"}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			assert.JSONEq(t, `{"type":"team_committed"}`, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %s received nothing", c.ID())
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	defer stop()

	c := NewClient(hub, newFakeConn())
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_StopEndsClientPumps(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	conn := newFakeConn()
	c := NewClient(hub, conn)
	hub.Register(c)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); c.WritePump() }()
	go func() { defer wg.Done(); c.ReadPump() }()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast([]byte("hello"))
	require.Eventually(t, func() bool { return len(conn.frames()) >= 1 }, time.Second, 5*time.Millisecond)

	stop()
	wg.Wait()

	frames := conn.frames()
	require.NotEmpty(t, frames)
	assert.Equal(t, websocket.TextMessage, frames[0].kind)
	assert.Equal(t, "hello", string(frames[0].data))
	assert.Equal(t, websocket.CloseMessage, frames[len(frames)-1].kind)

	// Calls after the hub stopped must not block.
	hub.Register(NewClient(hub, newFakeConn()))
	hub.Broadcast([]byte("late"))
}

func TestHub_NilIsSafe(t *testing.T) {
	var hub *Hub
	hub.Register(nil)
	hub.Unregister(nil)
	hub.Broadcast([]byte("x"))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestNotifier_PublishBroadcastsEvent(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	defer stop()

	c := NewClient(hub, newFakeConn())
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	n := NewNotifier(hub, nil)
	n.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	score := 0.79
	n.Publish(context.Background(), usecase.Event{
		Type:         usecase.EventTeamCommitted,
		ProjectID:    "P1",
		Status:       "on_going",
		Team:         []string{"E1", "E2"},
		AssignmentID: "T01",
		CliqueScore:  &score,
	})

	select {
	case msg := <-c.send:
		var got map[string]any
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "team_committed", got["type"])
		assert.Equal(t, "P1", got["project_id"])
		assert.Equal(t, "T01", got["assignment_id"])
		assert.Equal(t, "2024-03-01T12:00:00Z", got["timestamp"])
		assert.InDelta(t, 0.79, got["clique_score"], 1e-9)
	case <-time.After(time.Second):
		t.Fatal("no event broadcast")
	}
}
