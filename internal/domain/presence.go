package domain

import "time"

// Presence — онлайн-статус пользователя, независимый от членства в комнатах.
// Живёт только в памяти процесса.
type Presence struct {
	UserID   string    `json:"userId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}
