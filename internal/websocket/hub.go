package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"fieldrep/internal/middleware"
	"fieldrep/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the mobile client is not a browser origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event tells a connected client to re-fetch one of its lists.
type Event struct {
	Type string     `json:"type"`
	Kind model.Kind `json:"kind"`
}

// Client is one connected device of a representative.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	OwnerID string
	Send    chan []byte
}

type ownerMessage struct {
	ownerID string
	payload []byte
}

// Hub tracks connected clients and delivers refresh events to the clients
// of the owner whose records changed.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan ownerMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	log        *logrus.Entry
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan ownerMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		log:        log.WithField("component", "ws"),
	}
}

// Run dispatches hub events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					close(client.Send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.OwnerID] == nil {
				h.clients[client.OwnerID] = make(map[*Client]bool)
			}
			h.clients[client.OwnerID][client] = true
			h.mu.Unlock()
			h.log.WithField("owner_id", client.OwnerID).Debug("client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.log.WithField("owner_id", client.OwnerID).Debug("client disconnected")
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.ownerID] {
				select {
				case client.Send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	set := h.clients[client.OwnerID]
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.clients, client.OwnerID)
	}
}

// Notify queues a refresh event for ownerID's connected clients. It never
// blocks a submission: when the queue is full the event is dropped.
func (h *Hub) Notify(_ context.Context, kind model.Kind, ownerID string) {
	payload, err := json.Marshal(Event{Type: "refresh", Kind: kind})
	if err != nil {
		h.log.WithError(err).Error("failed to encode refresh event")
		return
	}
	select {
	case h.broadcast <- ownerMessage{ownerID: ownerID, payload: payload}:
	default:
		h.log.WithField("owner_id", ownerID).Warn("refresh event dropped: hub queue full")
	}
}

// ClientCount reports how many devices of ownerID are connected.
func (h *Hub) ClientCount(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[ownerID])
}

func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only drains the connection so closes are noticed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		_ = c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.WithError(err).Warn("unexpected websocket close")
			}
			return
		}
	}
}

// ServeWs authenticates the peer (token query param, cookie or bearer
// header) and upgrades the connection.
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	tokenString := c.Query("token")
	if tokenString == "" {
		var err error
		if tokenString, err = middleware.TokenFromRequest(c); err != nil {
			hub.log.WithError(err).Info("websocket connection rejected")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}

	s, err := middleware.ParseToken(tokenString, secret)
	if err != nil {
		hub.log.WithError(err).Info("websocket connection rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := &Client{Hub: hub, Conn: conn, OwnerID: s.OwnerID, Send: make(chan []byte, 256)}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
