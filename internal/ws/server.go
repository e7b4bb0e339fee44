// Package ws is the real-time push channel for the admin dashboard. New
// orders, status changes and deletions are fanned out to connected admin
// sessions; per-session notification records live only as long as the
// connection.
package ws

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ZainJ5/tipuburger-server/internal/cache"
	"github.com/ZainJ5/tipuburger-server/internal/config"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/queue"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notification is one session-local record shown in the admin bell menu.
type Notification struct {
	ID      string       `json:"id"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
	Read    bool         `json:"read"`
	Order   *order.Order `json:"order,omitempty"`
}

type Server struct {
	Logger *zap.Logger
	Config config.Config

	// Cache is patched alongside every broadcast so list pages stay
	// consistent even when the mutation happened on another instance.
	Cache *cache.PageCache

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	isAdmin bool

	// done is closed by drop so the heartbeat goroutine exits as soon
	// as the connection is gone, not on its next ping.
	done chan struct{}

	notifMu       sync.Mutex
	notifications []Notification
}

func New(logger *zap.Logger, cfg config.Config, pageCache *cache.PageCache) *Server {
	return &Server{
		Logger:  logger,
		Config:  cfg,
		Cache:   pageCache,
		clients: make(map[*client]struct{}),
	}
}

func (c *client) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(value)
}

// Handle upgrades the connection and runs the session until the peer goes
// away. The isAdmin flag is a client-declared capability, not an
// authorization check; order events only ever flow to subscribers that
// declared it.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		conn:    conn,
		isAdmin: r.URL.Query().Get("isAdmin") == "true",
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[cl] = struct{}{}
	s.mu.Unlock()

	go s.heartbeat(cl)
	s.readLoop(cl)
}

func (s *Server) heartbeat(cl *client) {
	interval := s.Config.WSHeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.writeMu.Lock()
			err := cl.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			cl.writeMu.Unlock()
			if err != nil {
				s.drop(cl)
				return
			}
		}
	}
}

type inboundMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (s *Server) readLoop(cl *client) {
	defer s.drop(cl)

	for {
		_, payload, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "markRead":
			cl.markRead(msg.ID)
		case "markAllRead":
			cl.markAllRead()
		case "notifications":
			_ = cl.writeJSON(map[string]any{
				"type":          "notifications",
				"notifications": cl.snapshotNotifications(),
			})
		}
	}
}

func (s *Server) drop(cl *client) {
	s.mu.Lock()
	_, present := s.clients[cl]
	delete(s.clients, cl)
	s.mu.Unlock()
	if present {
		close(cl.done)
		_ = cl.conn.Close()
	}
}

func (s *Server) adminClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for cl := range s.clients {
		if cl.isAdmin {
			clients = append(clients, cl)
		}
	}
	return clients
}

func (s *Server) broadcastAdmins(message any) {
	for _, cl := range s.adminClients() {
		if err := cl.writeJSON(message); err != nil {
			s.drop(cl)
		}
	}
}

// OrderCreated implements queue.OrderEventSink for newly created orders:
// appends a session notification per admin, pushes the newOrder event, and
// drops cached first pages so the order shows up on the next list read.
func (s *Server) OrderCreated(event queue.OrderEvent) {
	if s.Cache != nil {
		s.Cache.InvalidateFirstPages()
	}
	if event.Order == nil {
		return
	}

	notification := Notification{
		ID:      newNotificationID(),
		Message: "New order " + event.Order.OrderNumber + " received",
		Time:    time.Now(),
		Order:   event.Order,
	}

	for _, cl := range s.adminClients() {
		cl.appendNotification(notification)
		if err := cl.writeJSON(map[string]any{
			"type":         "newOrder",
			"order":        event.Order,
			"notification": notification,
		}); err != nil {
			s.drop(cl)
		}
	}
}

func (s *Server) OrderUpdated(event queue.OrderEvent) {
	if s.Cache != nil && event.Order != nil {
		updated := *event.Order
		s.Cache.Patch(event.OrderID, func(o *order.Order) {
			o.Status = updated.Status
			o.CancelReason = updated.CancelReason
			o.UpdatedAt = updated.UpdatedAt
		})
	}
	s.broadcastAdmins(map[string]any{
		"type":  "orderUpdated",
		"order": event.Order,
	})
}

func (s *Server) OrderDeleted(event queue.OrderEvent) {
	if s.Cache != nil {
		s.Cache.Remove(event.OrderID)
	}
	s.broadcastAdmins(map[string]any{
		"type":    "orderDeleted",
		"orderId": event.OrderID,
	})
}

func (c *client) appendNotification(n Notification) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *client) markRead(id string) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].Read = true
		}
	}
}

func (c *client) markAllRead() {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
}

func (c *client) snapshotNotifications() []Notification {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

func newNotificationID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
