// Package websocket carries each session's callback channel: the hub pushes
// notifications down the socket, and inbound command frames are re-published
// onto the in-process bus for the hub's command subscriber.
package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/pubsub"
	"github.com/nfrund/chathub/internal/session"
)

// Registrar is the slice of the hub the bridge needs: session registration
// tied to a callback channel.
type Registrar interface {
	Register(ctx context.Context, ch session.Channel, name, host string) (domain.Session, error)
}

// Bridge upgrades HTTP requests to chat sockets and owns the pump goroutines
// for each connected client.
type Bridge struct {
	registrar  Registrar
	publisher  pubsub.Publisher
	sendBuffer int
	log        *slog.Logger
}

// NewBridge creates a bridge that registers connections against the hub and
// publishes their inbound frames to the bus.
func NewBridge(registrar Registrar, publisher pubsub.Publisher, sendBuffer int, logger *slog.Logger) *Bridge {
	return &Bridge{
		registrar:  registrar,
		publisher:  publisher,
		sendBuffer: sendBuffer,
		log:        logger.With("component", "ws-bridge"),
	}
}

// Handler upgrades GET /ws?name=... to a chat socket. Registration happens
// on connect: the socket is the callback channel, so the first frame the
// client reads is its "registered" notification carrying the assigned
// session id and the current history snapshot.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'name' is required")
		}
		host := c.QueryParam("host")
		if host == "" {
			host = c.RealIP()
		}

		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // single-trust-domain deployment; no origin allowlist
		})
		if err != nil {
			b.log.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}

		client := newClient(conn, b.sendBuffer, b.log)
		s, err := b.registrar.Register(c.Request().Context(), client, name, host)
		if err != nil {
			conn.Close(websocket.StatusInternalError, "registration failed")
			return err
		}
		client.SessionID = s.ID

		go client.writePump()
		go b.readPump(client)

		return nil
	}
}

// readPump forwards inbound frames to the bus until the socket closes, then
// publishes the session-closed event so the command subscriber unregisters
// the session.
func (b *Bridge) readPump(c *Client) {
	defer func() {
		c.close()
		c.conn.Close(websocket.StatusNormalClosure, "client disconnected")

		payload, _ := json.Marshal(map[string]string{"session_id": c.SessionID})
		err := b.publisher.Publish(context.Background(), pubsub.Message{
			Topic:     TopicSessionClosed,
			SessionID: c.SessionID,
			Payload:   payload,
		})
		if err != nil {
			b.log.Error("Failed to publish session-closed event", "session_id", c.SessionID, "error", err)
		}
	}()

	for {
		_, data, err := c.conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				b.log.Info("WebSocket closed by client", "session_id", c.SessionID)
			} else if err != io.EOF {
				b.log.Warn("WebSocket read failed", "session_id", c.SessionID, "error", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			b.log.Warn("Dropping malformed frame", "session_id", c.SessionID, "error", err)
			continue
		}
		topic, ok := commandTopics[frame.Op]
		if !ok {
			b.log.Warn("Dropping frame with unknown op", "session_id", c.SessionID, "op", frame.Op)
			continue
		}

		err = b.publisher.Publish(context.Background(), pubsub.Message{
			Topic:     topic,
			SessionID: c.SessionID,
			Payload:   frame.Payload,
			Metadata:  map[string]string{"op": frame.Op},
		})
		if err != nil {
			b.log.Error("Failed to publish command", "session_id", c.SessionID, "op", frame.Op, "error", err)
		}
	}
}
