// Package realtime maintains the push channel to the backend. The only
// inbound event the application consumes is a forced-logout notification;
// it is delivered to the session controller as a typed value on a Go
// channel rather than via an ad-hoc callback mutating shared state.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/models"
)

// RevokedEvent is the payload of a forced-logout notification.
type RevokedEvent struct {
	Type   string `json:"type"` // "blocked" or "suspended"
	Reason string `json:"reason"`
}

// Title renders the user-facing headline for the notice.
func (e RevokedEvent) Title() string {
	if e.Type == "blocked" {
		return "Account Blocked"
	}
	return "Account Suspended"
}

// frame is the wire format of channel messages in both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinPayload struct {
	Room   string `json:"room"`
	Role   string `json:"role"`
	Device string `json:"device"`
}

const eventForceLogout = "forceLogout"

// ErrAlreadyOpen is returned when Open is called on a channel that has not
// been closed since the previous Open.
var ErrAlreadyOpen = errors.New("realtime channel already open")

// Channel is the push-channel surface the session controller depends on.
//
// Open dials, joins the per-user room, and returns a receive channel that is
// closed when the connection is shut down for good. Close is idempotent.
type Channel interface {
	Open(ctx context.Context, userID string, role models.Role) (<-chan RevokedEvent, error)
	Close() error
}

// WebSocketChannel implements Channel over a websocket connection carrying
// JSON frames. Lost connections are re-dialed with fibonacci backoff until
// the channel is closed.
type WebSocketChannel struct {
	url      string
	deviceID string
	log      logging.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
}

var _ Channel = (*WebSocketChannel)(nil)

func NewWebSocketChannel(url string, log logging.Logger) *WebSocketChannel {
	return &WebSocketChannel{
		url:      url,
		deviceID: uuid.NewString(),
		log:      log.With("component", "realtime"),
	}
}

func (c *WebSocketChannel) Open(ctx context.Context, userID string, role models.Role) (<-chan RevokedEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return nil, ErrAlreadyOpen
	}

	conn, err := c.dial(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.conn = conn
	c.cancel = cancel

	events := make(chan RevokedEvent, 1)
	go c.readLoop(runCtx, conn, userID, role, events)

	return events, nil
}

func (c *WebSocketChannel) dial(ctx context.Context, userID string, role models.Role) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime dial: %w", err)
	}

	join, err := json.Marshal(joinPayload{Room: userID, Role: string(role), Device: c.deviceID})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := conn.WriteJSON(frame{Event: "join", Data: join}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("realtime join: %w", err)
	}

	return conn, nil
}

// readLoop owns the events channel: it is closed exactly once, on exit.
func (c *WebSocketChannel) readLoop(ctx context.Context, conn *websocket.Conn, userID string, role models.Role, events chan<- RevokedEvent) {
	defer close(events)

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Warn(ctx, "connection lost, reconnecting", "error", err)

			next, rerr := c.reconnect(ctx, userID, role)
			if rerr != nil {
				c.log.Error(ctx, "reconnect abandoned", "error", rerr)
				return
			}
			conn = next
			c.setConn(conn)
			continue
		}

		if f.Event != eventForceLogout {
			continue
		}

		var ev RevokedEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			c.log.Warn(ctx, "undecodable forceLogout event", "error", err)
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (c *WebSocketChannel) reconnect(ctx context.Context, userID string, role models.Role) (*websocket.Conn, error) {
	var conn *websocket.Conn

	backoff := retry.WithCappedDuration(30*time.Second, retry.NewFibonacci(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		next, err := c.dial(ctx, userID, role)
		if err != nil {
			return retry.RetryableError(err)
		}
		conn = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (c *WebSocketChannel) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

// Close tears the connection down and stops the read loop. Idempotent.
func (c *WebSocketChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	return nil
}
