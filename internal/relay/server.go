package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type Config struct {
	TypingTTL           time.Duration
	TypingSweepInterval time.Duration
}

// Server — явный корень реле: владеет реестром соединений, индексом комнат,
// трекером присутствия и состоянием «печатает». Создаётся один раз в main
// и передаётся транспортам по ссылке — никакого глобального синглтона.
type Server struct {
	registry *Registry
	hub      *Hub
	presence *PresenceTracker
	typing   *TypingCoordinator
	router   *Router

	sweepEvery time.Duration
}

func NewServer(cfg Config) *Server {
	sweep := cfg.TypingSweepInterval
	if sweep <= 0 {
		sweep = time.Second
	}

	s := &Server{
		registry:   NewRegistry(),
		hub:        NewHub(),
		presence:   NewPresenceTracker(),
		typing:     NewTypingCoordinator(cfg.TypingTTL),
		sweepEvery: sweep,
	}
	s.router = newRouter(s)

	return s
}

// Presence отдаёт трекер читателям снаружи (HTTP-снапшот).
func (s *Server) Presence() *PresenceTracker { return s.presence }

// RoomMembers — id соединений в комнате; read-only взгляд для внешних читателей.
func (s *Server) RoomMembers(roomID string) []string { return s.hub.Members(roomID) }

// Run гоняет серверную выметку устаревших typing-записей до отмены контекста.
// По каждой просроченной записи комнате рассылается то же stop-событие,
// которое прислал бы клиентский таймер.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, e := range s.typing.Sweep(now) {
				event := EventUserStopTyping
				if e.Direct {
					event = EventUserStopTypingDirect
				}
				slog.Debug("typing entry expired", "room", e.RoomID, "user", e.UserID)
				s.hub.Broadcast(e.RoomID, newMessage(event, TypingPayload{
					RoomID:   e.RoomID,
					UserID:   e.UserID,
					UserName: e.UserName,
				}), e.ConnID)
			}
		}
	}
}

// Connect принимает новое соединение и возвращает его id.
func (s *Server) Connect(c Conn) string {
	id := s.registry.Admit(c)
	slog.Info("client connected", "conn", id)

	return id
}

// Disconnect выводит соединение из всех комнат и снимает с учёта.
// Идемпотентен: повторный вызов для того же id — no-op.
func (s *Server) Disconnect(connID string) {
	conn, rooms := s.registry.Remove(connID)
	if conn == nil {
		slog.Debug("disconnect for unknown connection", "conn", connID)
		return
	}

	for _, roomID := range rooms {
		_ = s.hub.Leave(roomID, connID)
		s.hub.Broadcast(roomID, newMessage(EventUserLeft, PeerEventPayload{UserID: connID}), connID)
	}
	slog.Info("client disconnected", "conn", connID, "rooms", len(rooms))
}

// HandleEvent — единая точка входа для событий транспорта. События одного
// соединения сериализованы его read-петлёй, поэтому join/leave/disconnect
// для конкретного conn не гоняются между собой.
func (s *Server) HandleEvent(connID string, msg Message) {
	s.router.Dispatch(connID, msg)
}

// --- обработчики таблицы маршрутизации ---

func (s *Server) handleJoinRoom(connID string, payload json.RawMessage) {
	roomID, ok := decodeRoomID(payload)
	if !ok {
		slog.Warn("join-room without room id dropped", "conn", connID)
		return
	}

	// Сначала отметка в реестре: для уже отключённого соединения
	// вход в комнату не выполняется.
	if err := s.registry.AddRoom(connID, roomID); err != nil {
		slog.Debug("join-room rejected", "conn", connID, "room", roomID, "err", err)
		return
	}
	c, _ := s.registry.Get(connID)
	if c == nil {
		return
	}
	s.hub.Join(roomID, connID, c)
	slog.Info("joined room", "conn", connID, "room", roomID)

	s.hub.Broadcast(roomID, newMessage(EventUserJoined, PeerEventPayload{UserID: connID}), connID)
}

func (s *Server) handleLeaveRoom(connID string, payload json.RawMessage) {
	roomID, ok := decodeRoomID(payload)
	if !ok {
		slog.Warn("leave-room without room id dropped", "conn", connID)
		return
	}

	s.registry.RemoveRoom(connID, roomID)
	if err := s.hub.Leave(roomID, connID); err != nil {
		// leave комнаты, в которую не входил — no-op
		slog.Debug("leave-room ignored", "conn", connID, "room", roomID, "err", err)
		return
	}
	slog.Info("left room", "conn", connID, "room", roomID)

	s.hub.Broadcast(roomID, newMessage(EventUserLeft, PeerEventPayload{UserID: connID}), connID)
}

// relayToRoom пересылает тело события в комнату как есть, минуя отправителя.
func (s *Server) relayToRoom(out string) handlerFunc {
	return func(connID string, payload json.RawMessage) {
		var rs roomScoped
		if err := json.Unmarshal(payload, &rs); err != nil || rs.RoomID == "" {
			slog.Warn("room event without roomId dropped", "event", out, "conn", connID)
			return
		}
		s.hub.Broadcast(rs.RoomID, Message{Event: out, Payload: payload}, connID)
	}
}

func (s *Server) handleTyping(out string, direct, start bool) handlerFunc {
	return func(connID string, payload json.RawMessage) {
		var p TypingPayload
		if err := json.Unmarshal(payload, &p); err != nil || p.RoomID == "" {
			slog.Warn("typing event without roomId dropped", "event", out, "conn", connID)
			return
		}

		if start {
			s.typing.Touch(p.RoomID, p.UserID, p.UserName, connID, direct)
		} else {
			s.typing.Clear(p.RoomID, p.UserID)
		}
		s.hub.Broadcast(p.RoomID, Message{Event: out, Payload: payload}, connID)
	}
}

// handleStatus обновляет presence и уведомляет все соединения, кроме
// отправителя. Fan-out глобальный, как в исходном протоколе.
func (s *Server) handleStatus(online bool) handlerFunc {
	return func(connID string, payload json.RawMessage) {
		var userID string
		if err := json.Unmarshal(payload, &userID); err != nil || userID == "" {
			slog.Warn("status event without user id dropped", "conn", connID)
			return
		}

		rec := s.presence.SetOnline(userID, online)
		s.registry.BroadcastAll(newMessage(EventUserStatusChange, StatusChangePayload{
			UserID:   rec.UserID,
			IsOnline: rec.IsOnline,
		}), connID)
	}
}

// decodeRoomID разбирает тело join-room/leave-room: там голая JSON-строка.
func decodeRoomID(payload json.RawMessage) (string, bool) {
	var roomID string
	if err := json.Unmarshal(payload, &roomID); err != nil || roomID == "" {
		return "", false
	}
	return roomID, true
}
