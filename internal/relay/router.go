package relay

import (
	"encoding/json"
	"log/slog"
)

type handlerFunc func(connID string, payload json.RawMessage)

// Router — конечная таблица «имя события -> обработчик». Маршрутизация
// data-driven, чтобы её можно было тестировать без живого транспорта.
//
// Аутентификации здесь нет: userId/userName в typing- и status-событиях
// берутся из тела как есть — модель доверия унаследована от исходного
// протокола и сохранена сознательно.
type Router struct {
	handlers map[string]handlerFunc
}

func newRouter(s *Server) *Router {
	return &Router{handlers: map[string]handlerFunc{
		EventJoinRoom:          s.handleJoinRoom,
		EventLeaveRoom:         s.handleLeaveRoom,
		EventSendMessage:       s.relayToRoom(EventReceiveMessage),
		EventSendDirectMessage: s.relayToRoom(EventReceiveDirectMessage),
		EventTyping:            s.handleTyping(EventUserTyping, false, true),
		EventStopTyping:        s.handleTyping(EventUserStopTyping, false, false),
		EventTypingDirect:      s.handleTyping(EventUserTypingDirect, true, true),
		EventStopTypingDirect:  s.handleTyping(EventUserStopTypingDirect, true, false),
		EventUserOnline:        s.handleStatus(true),
		EventUserOffline:       s.handleStatus(false),
	}}
}

// Dispatch разбирает событие по таблице. Неизвестные события отбрасываются;
// соединение при этом никогда не рвётся.
func (r *Router) Dispatch(connID string, msg Message) {
	h, ok := r.handlers[msg.Event]
	if !ok {
		slog.Debug("unknown event dropped", "event", msg.Event, "conn", connID)
		return
	}
	h(connID, msg.Payload)
}
