package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"delve/pkg/api"
)

// Настройки WebSocket
const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между websocket-соединением и игровым циклом
type Client struct {
	ID     string
	Conn   *websocket.Conn
	server *Server

	// Send - ответы только этому клиенту (ошибки разбора команд)
	Send    chan any
	updates <-chan *api.Snapshot
	log     *logrus.Entry
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:      id,
		Conn:    conn,
		server:  s,
		Send:    make(chan any, 8),
		updates: s.hub.Register(id),
		log:     s.log.WithField("client", id),
	}
}

func (c *Client) writeWait() time.Duration {
	if c.server.cfg.WriteTimeout > 0 {
		return c.server.cfg.WriteTimeout
	}
	return 10 * time.Second
}

// readPump читает команды клиента и передает их в игровой цикл
func (c *Client) readPump() {
	defer func() {
		c.server.hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	c.log.Info("Client connected")

	for {
		var msg api.ClientCommand
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}

		cmd, err := msg.ToCommand()
		if err != nil {
			c.log.WithError(err).WithField("action", msg.Action).Warn("Rejected client command")
			select {
			case c.Send <- api.NewServerError(err):
			default:
			}
			continue
		}

		select {
		case c.server.commands <- cmd:
		case <-c.server.done:
			return
		}
	}
}

// writePump отправляет снимки и ответы клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	write := func(v any) bool {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait())); err != nil {
			c.log.WithError(err).Warn("failed to set write deadline")
		}
		if err := c.Conn.WriteJSON(v); err != nil {
			c.log.WithError(err).Debug("write json message failed")
			return false
		}
		return true
	}

	for {
		select {
		case snap, ok := <-c.updates:
			if !ok {
				_ = c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait()))
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !write(snap) {
				return
			}

		case reply := <-c.Send:
			if !write(reply) {
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait())); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
