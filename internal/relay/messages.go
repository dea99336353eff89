package relay

import (
	"encoding/json"
	"log/slog"
)

// Входящие события (имена — контракт с фронтом, не менять)
const (
	EventJoinRoom          = "join-room"
	EventLeaveRoom         = "leave-room"
	EventSendMessage       = "send-message"
	EventSendDirectMessage = "send-direct-message"
	EventTyping            = "typing"
	EventStopTyping        = "stop-typing"
	EventTypingDirect      = "typing-direct"
	EventStopTypingDirect  = "stop-typing-direct"
	EventUserOnline        = "user-online"
	EventUserOffline       = "user-offline"
)

// Исходящие зеркала
const (
	EventUserJoined           = "user-joined"
	EventUserLeft             = "user-left"
	EventReceiveMessage       = "receive-message"
	EventReceiveDirectMessage = "receive-direct-message"
	EventUserTyping           = "user-typing"
	EventUserStopTyping       = "user-stop-typing"
	EventUserTypingDirect     = "user-typing-direct"
	EventUserStopTypingDirect = "user-stop-typing-direct"
	EventUserStatusChange     = "user-status-change"
)

// Message — конверт для всех событий в обе стороны. Payload хранится сырым:
// тело send-message реле не интерпретирует, только пересылает.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PeerEventPayload — тело user-joined / user-left.
// userId здесь — connection id, как в исходном протоколе.
type PeerEventPayload struct {
	UserID string `json:"userId"`
}

type TypingPayload struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

type StatusChangePayload struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
}

// roomScoped вытаскивает roomId из произвольного тела события.
type roomScoped struct {
	RoomID string `json:"roomId"`
}

func newMessage(event string, v any) Message {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal event payload failed", "event", event, "err", err)
	}
	return Message{Event: event, Payload: b}
}
