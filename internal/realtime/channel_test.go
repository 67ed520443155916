package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/models"
)

type testServer struct {
	*httptest.Server
	joins  chan joinPayload
	conns  chan *websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		joins: make(chan joinPayload, 4),
		conns: make(chan *websocket.Conn, 4),
	}
	upgrader := websocket.Upgrader{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		require.Equal(t, "join", f.Event)

		var join joinPayload
		require.NoError(t, json.Unmarshal(f.Data, &join))
		ts.joins <- join
		ts.conns <- conn
	}))
	t.Cleanup(ts.Server.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWebSocketChannel_JoinsRoom(t *testing.T) {
	srv := newTestServer(t)
	c := NewWebSocketChannel(srv.wsURL(), testLogger())
	defer c.Close()

	_, err := c.Open(context.Background(), "u1", models.RoleAdmin)
	require.NoError(t, err)

	select {
	case join := <-srv.joins:
		assert.Equal(t, "u1", join.Room)
		assert.Equal(t, "admin", join.Role)
		assert.NotEmpty(t, join.Device)
	case <-time.After(2 * time.Second):
		t.Fatal("join frame not received")
	}
}

func TestWebSocketChannel_DeliversForceLogout(t *testing.T) {
	srv := newTestServer(t)
	c := NewWebSocketChannel(srv.wsURL(), testLogger())
	defer c.Close()

	events, err := c.Open(context.Background(), "u1", models.RoleUser)
	require.NoError(t, err)

	conn := <-srv.conns
	data, _ := json.Marshal(RevokedEvent{Type: "blocked", Reason: "cheating"})
	require.NoError(t, conn.WriteJSON(frame{Event: eventForceLogout, Data: data}))

	select {
	case ev := <-events:
		assert.Equal(t, "blocked", ev.Type)
		assert.Equal(t, "cheating", ev.Reason)
		assert.Equal(t, "Account Blocked", ev.Title())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestWebSocketChannel_IgnoresOtherEvents(t *testing.T) {
	srv := newTestServer(t)
	c := NewWebSocketChannel(srv.wsURL(), testLogger())
	defer c.Close()

	events, err := c.Open(context.Background(), "u1", models.RoleUser)
	require.NoError(t, err)

	conn := <-srv.conns
	require.NoError(t, conn.WriteJSON(frame{Event: "chat", Data: json.RawMessage(`{}`)}))
	data, _ := json.Marshal(RevokedEvent{Type: "suspended", Reason: "spam"})
	require.NoError(t, conn.WriteJSON(frame{Event: eventForceLogout, Data: data}))

	select {
	case ev := <-events:
		assert.Equal(t, "suspended", ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestWebSocketChannel_CloseStopsDelivery(t *testing.T) {
	srv := newTestServer(t)
	c := NewWebSocketChannel(srv.wsURL(), testLogger())

	events, err := c.Open(context.Background(), "u1", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	select {
	case _, ok := <-events:
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Close")
	}
}

func TestWebSocketChannel_SecondOpenRejected(t *testing.T) {
	srv := newTestServer(t)
	c := NewWebSocketChannel(srv.wsURL(), testLogger())
	defer c.Close()

	_, err := c.Open(context.Background(), "u1", models.RoleUser)
	require.NoError(t, err)

	_, err = c.Open(context.Background(), "u1", models.RoleUser)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestRevokedEvent_Title(t *testing.T) {
	assert.Equal(t, "Account Blocked", RevokedEvent{Type: "blocked"}.Title())
	assert.Equal(t, "Account Suspended", RevokedEvent{Type: "suspended"}.Title())
}
