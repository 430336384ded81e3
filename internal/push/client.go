package push

import (
	"log/slog"
	"sync"
	"time"

	"agency-notify/internal/pkg/config"

	"github.com/gorilla/websocket"
)

// Client adapts one websocket connection to a hub Session. Delivery is
// fire-and-forget: a failed or slow write tears the connection down and the
// client reconciles through the query API after reconnecting.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	cfg    config.PushConfig
	logger *slog.Logger

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, cfg config.PushConfig, logger *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, cfg.SendBuffer),
		cfg:    cfg,
		logger: logger,
	}
}

// Send queues a payload for the write pump. It reports false when the buffer
// is full, which the hub treats as a dead member.
func (c *Client) Send(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close stops the write pump; the pump sends the close frame.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump drains inbound frames to keep control-frame processing alive and
// deregisters on disconnect. Clients send nothing of interest after the join
// handshake.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("push connection read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

// WritePump writes queued payloads and keepalive pings until the send channel
// closes or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
