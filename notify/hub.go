package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

// Hub streams newly placed orders to connected admin dashboards.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*hubClient
}

// hubClient serialises writes to one connection; gorilla allows a single writer.
type hubClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (hc *hubClient) write(frames [][]byte) error {
	hc.writeMu.Lock()
	defer hc.writeMu.Unlock()
	for _, frame := range frames {
		hc.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := hc.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return err
		}
	}
	return nil
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*hubClient),
	}
}

// ServeWS upgrades the request and keeps the connection until the client goes away.
// GET /admin/orders/ws
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.add(conn)
	defer h.remove(conn)

	// Only control frames are expected from dashboards; a read error means the peer left.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &hubClient{conn: conn}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) snapshot() []*hubClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*hubClient, 0, len(h.clients))
	for _, hc := range h.clients {
		out = append(out, hc)
	}
	return out
}

// Len reports the number of connected dashboards.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishOrders writes one text frame per order to every client. Writes run in
// parallel outside the hub lock, so a stalled dashboard costs at most one write
// deadline. Clients that fail a write are dropped.
func (h *Hub) PublishOrders(_ context.Context, orders []models.Order) error {
	frames := make([][]byte, 0, len(orders))
	for _, o := range orders {
		data, err := json.Marshal(NewOrderEvent(o))
		if err != nil {
			return err
		}
		frames = append(frames, data)
	}

	var wg sync.WaitGroup
	for _, hc := range h.snapshot() {
		wg.Add(1)
		go func(hc *hubClient) {
			defer wg.Done()
			if err := hc.write(frames); err != nil {
				log.Debug().Err(err).Msg("dropping order dashboard")
				h.remove(hc.conn)
			}
		}(hc)
	}
	wg.Wait()
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}
