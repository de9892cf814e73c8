// internal/service/generator/infrastructure/adapter/hub_sink.go
package adapter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { // 简化处理，允许所有跨域
		return true
	},
}

// Hub 维护所有活跃的 WebSocket 连接，并把订单广播给它们。
// 只读观察者，客户端发来的消息会被丢弃。
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	lock       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run 处理连接的注册与注销，ctx 结束时断开所有客户端
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.lock.Lock()
			h.clients[client] = struct{}{}
			h.lock.Unlock()
			zlog.Debug().Str("remote", client.remote).Msg("live-tail client registered")
		case client := <-h.unregister:
			h.remove(client)
			zlog.Debug().Str("remote", client.remote).Msg("live-tail client unregistered")
		case <-ctx.Done():
			h.lock.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.lock.Unlock()
			return nil
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

func (h *Hub) Name() string { return "websocket" }

// Emit 非阻塞广播。发送缓冲已满的慢客户端会被断开。
func (h *Hub) Emit(_ context.Context, order *domain.Order) error {
	payload, err := order.Encode()
	if err != nil {
		return err
	}

	var slow []*Client
	h.lock.RLock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.lock.RUnlock()

	for _, client := range slow {
		h.remove(client)
	}
	return nil
}

// Close 由 Run 的 ctx 负责断开连接，这里无事可做
func (h *Hub) Close() error { return nil }

// ServeWs 把 HTTP 请求升级为 WebSocket 并注册到 Hub
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), remote: r.RemoteAddr}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Client 是一个WebSocket连接的代表
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

// writePump 负责将 send channel 中的消息写入 websocket，并定期发送 ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 关闭了 channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump 只处理 pong 和关闭，连接断开后注销
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
