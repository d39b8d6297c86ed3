package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Client pumps messages between one websocket and its session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *Session
}

func NewClient(hub *Hub, conn *websocket.Conn, session *Session) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: session,
	}
}

func (c *Client) BoardID() string { return c.session.BoardID }

// ReadPump reads and handles messages until the connection closes. It is
// the only goroutine that touches the session.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Release(c)
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.Send(c.session.Welcome())
	c.Send(c.session.State())

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", c.session.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", c.session.ID)
			continue
		}

		reply, err := c.session.Handle(ctx, &msg)
		if err != nil {
			slog.Debug("message rejected", "type", msg.Type, "error", err, "session", c.session.ID)
		}
		c.Send(reply)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", c.session.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "session", c.session.ID)
	}
}
