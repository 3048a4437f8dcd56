package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// upgrader configures the WebSocket connection. Clients authenticate with a
// token query parameter, so the origin is not used for access control.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient serializes writes to a single connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(v)
}

func (c *wsClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

type delivery struct {
	userID  uint
	payload interface{}
}

// MessageHub tracks live connections per user and pushes new messages to them.
type MessageHub struct {
	clients   map[uint]map[*wsClient]bool
	broadcast chan delivery
	mu        sync.Mutex
}

// NewMessageHub creates a hub and starts its delivery goroutine.
func NewMessageHub() *MessageHub {
	hub := &MessageHub{
		clients:   make(map[uint]map[*wsClient]bool),
		broadcast: make(chan delivery, 100),
	}
	go hub.run()
	return hub
}

func (h *MessageHub) run() {
	for d := range h.broadcast {
		for _, client := range h.snapshot(d.userID) {
			if err := client.write(d.payload); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"user_id":  d.userID,
					"conn_ptr": fmt.Sprintf("%p", client.conn),
				}).Warn("MessageHub: failed to deliver, dropping connection")
				h.Unregister(d.userID, client)
				client.conn.Close()
			}
		}
	}
}

func (h *MessageHub) snapshot(userID uint) []*wsClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*wsClient, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		out = append(out, client)
	}
	return out
}

// Register adds a connection for userID.
func (h *MessageHub) Register(userID uint, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*wsClient]bool)
	}
	h.clients[userID][client] = true
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"conn_ptr": fmt.Sprintf("%p", client.conn),
	}).Info("Client registered with MessageHub.")
}

// Unregister removes a connection; the user entry goes away with its last connection.
func (h *MessageHub) Unregister(userID uint, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Online reports how many live connections userID has.
func (h *MessageHub) Online(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Deliver queues msg for the receiver's live connections. It never blocks;
// when the queue is full the message is only available from the inbox.
func (h *MessageHub) Deliver(msg *models.Message) {
	select {
	case h.broadcast <- delivery{userID: msg.ReceiverID, payload: gin.H{"type": "message", "message": msg}}:
	default:
		logrus.WithField("message_id", msg.ID).Warn("MessageHub: delivery queue full, dropping live push")
	}
}

var messageHub = NewMessageHub()

// HandleMessageWebSocket upgrades an authenticated connection and keeps it
// registered until the client goes away. Auth comes from the token query
// parameter because browsers cannot set headers on WebSocket requests.
func HandleMessageWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	claims, err := middleware.ValidateToken(token)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket connection attempt with invalid token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}
	messageHub.Register(claims.UserID, client)
	defer messageHub.Unregister(claims.UserID, client)

	done := make(chan struct{})
	defer close(done)
	go keepAlive(client, done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("user_id", claims.UserID).Debug("WebSocket read ended")
			}
			break
		}
	}
	logrus.WithField("user_id", claims.UserID).Info("Message WebSocket connection closed.")
}

func keepAlive(client *wsClient, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}
