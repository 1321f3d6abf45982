// Package websocket fans live quotes out to browser clients as JSON frames.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/synthfeed/internal/messaging"
	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/models"
)

// Hub manages websocket clients and broadcasts quote updates to them.
type Hub struct {
	cfg      *config.WebSocketConfig
	nats     *messaging.NATSClient
	logger   *logrus.Entry
	upgrader websocket.Upgrader

	clients   map[*client]struct{}
	clientsMu sync.RWMutex

	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// client is one connected websocket peer with a buffered send queue.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new websocket hub.
func NewHub(cfg *config.WebSocketConfig, natsClient *messaging.NATSClient, logger *logrus.Logger) *Hub {
	return &Hub{
		cfg:    cfg,
		nats:   natsClient,
		logger: logger.WithField("component", "websocket-hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Start subscribes the hub to the quote stream.
func (h *Hub) Start(ctx context.Context) error {
	if h.running {
		return fmt.Errorf("websocket hub already running")
	}

	if err := h.nats.SubscribeQuotes(func(quote *models.Quote) {
		h.broadcastQuote(quote)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to quotes: %w", err)
	}

	h.running = true
	h.logger.Info("WebSocket hub started")
	return nil
}

// Stop disconnects all clients.
func (h *Hub) Stop() error {
	if !h.running {
		return nil
	}

	close(h.done)

	h.clientsMu.Lock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
	}
	h.clients = make(map[*client]struct{})
	h.clientsMu.Unlock()

	h.wg.Wait()
	h.running = false

	h.logger.Info("WebSocket hub stopped")
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades an HTTP request and attaches the client.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.clientsMu.RLock()
	full := len(h.clients) >= h.cfg.MaxClients
	h.clientsMu.RUnlock()
	if full {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.clientsMu.Lock()
	h.clients[c] = struct{}{}
	h.clientsMu.Unlock()

	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Client connected")

	h.wg.Add(2)
	go h.writePump(c)
	go h.readPump(c)
}

// broadcastQuote queues a quote frame to every client, dropping frames for
// clients that cannot keep up.
func (h *Hub) broadcastQuote(quote *models.Quote) {
	data, err := json.Marshal(quote)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal quote")
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// writePump flushes queued frames and pings on an interval.
func (h *Hub) writePump(c *client) {
	defer h.wg.Done()

	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.detach(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.detach(c)
				return
			}
		case <-h.done:
			return
		}
	}
}

// readPump consumes control frames until the peer goes away.
func (h *Hub) readPump(c *client) {
	defer h.wg.Done()

	c.conn.SetReadLimit(int64(h.cfg.ReadBufferSize))
	c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.detach(c)
			return
		}
	}
}

// detach removes a client after a transport error.
func (h *Hub) detach(c *client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
