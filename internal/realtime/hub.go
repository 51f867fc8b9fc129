// Package realtime delivers best-effort events to connected users over
// websockets. Every user has a room, user:<id>, holding all of their sessions.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gigflow/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Event is the frame pushed to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const EventPong = "pong"

type session struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (s *session) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub tracks live sessions per user room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*session]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*session]struct{})}
}

func RoomFor(userID string) string {
	return "user:" + userID
}

func (h *Hub) register(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	room := RoomFor(s.userID)
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*session]struct{})
	}
	h.rooms[room][s] = struct{}{}
	return true
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := RoomFor(s.userID)
	if members, ok := h.rooms[room]; ok {
		if _, ok := members[s]; ok {
			delete(members, s)
			s.close()
		}
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Notify enqueues an event on every session of userID. It never blocks: a
// session whose buffer is full misses the event.
func (h *Hub) Notify(userID, event string, payload any) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		logger.Warn("encode realtime event failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.rooms[RoomFor(userID)] {
		select {
		case s.send <- data:
		default:
			logger.Debug("realtime event dropped", "user_id", userID, "event", event)
		}
	}
}

// enqueue sends data to s if it is still registered.
func (h *Hub) enqueue(s *session, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.rooms[RoomFor(s.userID)][s]; !ok {
		return
	}
	select {
	case s.send <- data:
	default:
	}
}

// Sessions returns the number of live sessions for userID.
func (h *Hub) Sessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[RoomFor(userID)])
}

// Close disconnects every session and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for room, members := range h.rooms {
		for s := range members {
			s.close()
		}
		delete(h.rooms, room)
	}
}

// ServeWS registers conn for userID and pumps until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID string) {
	s := &session{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	if !h.register(s) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}
	logger.Info("websocket connected", "user_id", userID)

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) readPump(s *session) {
	defer func() {
		h.unregister(s)
		_ = s.conn.Close()
		logger.Info("websocket disconnected", "user_id", s.userID)
	}()

	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "user_id", s.userID, "error", err)
			}
			return
		}

		var in struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &in); err != nil {
			continue
		}
		if in.Type == "ping" {
			pong, _ := json.Marshal(Event{Type: EventPong, Payload: map[string]any{"timestamp": time.Now().UTC()}})
			h.enqueue(s, pong)
		}
	}
}

func (h *Hub) writePump(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
