package relay

import (
	"sync"

	"github.com/qwisky/relay-service/internal/domain"
)

// Hub — индекс членства: roomID -> connID -> Conn.
// Комната существует, только пока в ней есть хотя бы одно соединение.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Conn
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[string]Conn)}
}

// Join добавляет соединение в комнату. Повторный join — no-op.
func (h *Hub) Join(roomID, connID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[roomID]
	if !ok {
		rs = make(map[string]Conn)
		h.rooms[roomID] = rs
	}
	rs[connID] = c
}

// Leave убирает соединение из комнаты; опустевшая комната удаляется из индекса.
func (h *Hub) Leave(roomID, connID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[roomID]
	if !ok {
		return domain.ErrNotInRoom
	}
	if _, in := rs[connID]; !in {
		return domain.ErrNotInRoom
	}

	delete(rs, connID)
	if len(rs) == 0 {
		delete(h.rooms, roomID)
	}

	return nil
}

func (h *Hub) Contains(roomID, connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rs, ok := h.rooms[roomID]
	if !ok {
		return false
	}
	_, in := rs[connID]

	return in
}

// Members возвращает id соединений в комнате (пустой срез для несуществующей).
func (h *Hub) Members(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rs := h.rooms[roomID]
	ids := make([]string, 0, len(rs))
	for id := range rs {
		ids = append(ids, id)
	}

	return ids
}

// Broadcast доставляет событие всем в комнате, кроме exclude.
// Комнаты нет — тихий no-op. Ошибки отправки не прерывают рассылку.
func (h *Hub) Broadcast(roomID string, msg Message, exclude string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[roomID]; ok {
		for id, c := range rs {
			if id == exclude {
				continue
			}
			_ = c.Send(msg) // best-effort
		}
	}
}
