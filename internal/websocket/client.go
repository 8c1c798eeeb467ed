package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/nfrund/chathub/internal/domain"
)

const writeTimeout = 10 * time.Second

// Client is one connected session's socket. It implements session.Channel:
// the hub's pushes land in the buffered send channel and the write pump
// drains them onto the wire in order.
type Client struct {
	SessionID string

	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

func newClient(conn *websocket.Conn, sendBuffer int, logger *slog.Logger) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  logger,
	}
}

// Deliver marshals the notification into a wire frame and enqueues it.
// A session whose buffer stays full past the delivery deadline is treated
// as unreachable; the hub logs the failure and moves on.
func (c *Client) Deliver(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	buf, err := json.Marshal(Frame{Op: string(n.Kind), Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return fmt.Errorf("session %s: channel closed", c.SessionID)
	}

	select {
	case c.send <- buf:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("session %s: send buffer full: %w", c.SessionID, ctx.Err())
	}
}

// close marks the client unreachable and releases the write pump.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump drains the send channel onto the socket until the channel is
// closed or a write fails.
func (c *Client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "server-side cleanup")

	for buf := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.conn.Write(ctx, websocket.MessageText, buf)
		cancel()
		if err != nil {
			c.log.Error("WebSocket write failed", "session_id", c.SessionID, "error", err)
			return
		}
	}
}
