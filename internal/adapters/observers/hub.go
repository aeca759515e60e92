package observers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub держит подключенных наблюдателей и рассылает им события.
// Рассылка не блокируется: если буфер клиента полон, событие для него отбрасывается.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logging.Logger
	now      func() time.Time

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub(cfg *config.AppConfig, logger *logging.Logger) *Hub {
	origins := make(map[string]bool, len(cfg.WSAllowedOrigins))
	allowAll := false
	for _, o := range cfg.WSAllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || origins[origin]
			},
		},
		logger:  logger.WithPrefix("WS"),
		now:     time.Now,
		clients: make(map[*client]struct{}),
	}
}

// Publish реализует interfaces.EventPublisher.
func (h *Hub) Publish(_ context.Context, event string, payload interface{}) {
	msg, err := h.encode(event, payload)
	if err != nil {
		h.logger.Error("Failed to encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Observer buffer full, event dropped", "event", event, "remote", c.conn.RemoteAddr())
		}
	}
}

// Clients возвращает число активных соединений.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve поднимает websocket, отправляет новому наблюдателю снимок статуса
// (status_update) и держит соединение до его закрытия.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, onConnect func() models.MachineStatus, onDisconnect func()) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	snapshot := onConnect()
	if msg, err := h.encode(models.EventStatusUpdate, snapshot); err == nil {
		c.send <- msg
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(c)

	h.mu.Lock()
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()

	onDisconnect()
	return nil
}

// Close разрывает все соединения.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) encode(event string, payload interface{}) ([]byte, error) {
	return json.Marshal(models.Envelope{Event: event, Timestamp: h.now().UTC(), Data: payload})
}

// readPump читает входящие кадры только ради pong и обнаружения закрытия.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Observer connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
