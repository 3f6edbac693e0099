// Package realtime pushes chat activity to websocket clients grouped in one
// room per match.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/furrymatch/service-matching/internal/platform/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Upgrader accepts cross-origin upgrades; access is controlled by the
// bearer token checked before the upgrade.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	matchID uuid.UUID
	ownerID uuid.UUID
	conn    *websocket.Conn
	send    chan []byte
}

// Hub fans messages out to the clients of each match room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*client]struct{}
	logger *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*client]struct{}),
		logger: logger,
	}
}

// Serve joins conn to the room of matchID and blocks until the connection
// closes.
func (h *Hub) Serve(conn *websocket.Conn, matchID, ownerID uuid.UUID) {
	c := &client{
		matchID: matchID,
		ownerID: ownerID,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

// Broadcast sends v as JSON to every client in the room. Clients whose
// buffer is full are disconnected.
func (h *Hub) Broadcast(matchID uuid.UUID, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode realtime payload",
			zap.String("match_id", matchID.String()),
			zap.Error(err),
		)
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.rooms[matchID] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow realtime client",
			zap.String("match_id", matchID.String()),
			zap.String("owner_id", c.ownerID.String()),
		)
		h.unregister(c)
	}
}

// RoomSize returns how many clients are connected to a match.
func (h *Hub) RoomSize(matchID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}

// Shutdown disconnects every client.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	var all []*client
	for _, room := range h.rooms {
		for c := range room {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.unregister(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	room, ok := h.rooms[c.matchID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[c.matchID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	metrics.RealtimeConnections.Inc()
	h.logger.Debug("realtime client joined",
		zap.String("match_id", c.matchID.String()),
		zap.String("owner_id", c.ownerID.String()),
	)
}

// unregister is safe to call more than once per client.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	room, ok := h.rooms[c.matchID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, present := room[c]; !present {
		h.mu.Unlock()
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.matchID)
	}
	close(c.send)
	h.mu.Unlock()

	metrics.RealtimeConnections.Dec()
}

// readPump only services control frames; clients post messages over REST.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("realtime client read error", zap.Error(err))
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
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
