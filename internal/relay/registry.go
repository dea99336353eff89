package relay

import (
	"sync"

	"github.com/google/uuid"

	"github.com/qwisky/relay-service/internal/domain"
)

type client struct {
	conn  Conn
	rooms map[string]struct{} // комнаты, в которых состоит соединение
}

// Registry ведёт учёт живых соединений и их членства в комнатах.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*client // connID -> client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*client)}
}

// Admit регистрирует новое соединение и выдаёт ему id.
func (r *Registry) Admit(c Conn) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = &client{conn: c, rooms: make(map[string]struct{})}

	return id
}

// Remove снимает соединение с учёта и возвращает его Conn и список комнат,
// в которых оно состояло. Идемпотентен: повторный вызов вернёт (nil, nil).
func (r *Registry) Remove(id string) (Conn, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cl, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	delete(r.clients, id)

	rooms := make([]string, 0, len(cl.rooms))
	for room := range cl.rooms {
		rooms = append(rooms, room)
	}

	return cl.conn, rooms
}

func (r *Registry) Get(id string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cl, ok := r.clients[id]
	if !ok {
		return nil, false
	}
	return cl.conn, true
}

// AddRoom отмечает комнату в наборе соединения.
func (r *Registry) AddRoom(id, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cl, ok := r.clients[id]
	if !ok {
		return domain.ErrUnknownConnection
	}
	cl.rooms[roomID] = struct{}{}

	return nil
}

func (r *Registry) RemoveRoom(id, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cl, ok := r.clients[id]; ok {
		delete(cl.rooms, roomID)
	}
}

// Rooms возвращает снапшот набора комнат соединения.
func (r *Registry) Rooms(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cl, ok := r.clients[id]
	if !ok {
		return nil
	}
	rooms := make([]string, 0, len(cl.rooms))
	for room := range cl.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}

// BroadcastAll шлёт событие каждому соединению, кроме exclude (глобальный fan-out).
func (r *Registry) BroadcastAll(msg Message, exclude string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, cl := range r.clients {
		if id == exclude {
			continue
		}
		_ = cl.conn.Send(msg) // best-effort
	}
}
