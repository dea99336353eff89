package relay

import (
	"sync"
	"time"
)

type typingKey struct {
	roomID string
	userID string
}

type typingEntry struct {
	userName string
	connID   string
	direct   bool
	seen     time.Time
}

// TypingCoordinator — эфемерный набор «сейчас печатает» по (комната, пользователь).
// Клиент сам шлёт stop-typing по таймеру, но на оборванных соединениях это
// событие теряется, поэтому записи дополнительно выметаются по TTL на сервере.
type TypingCoordinator struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[typingKey]typingEntry
}

func NewTypingCoordinator(ttl time.Duration) *TypingCoordinator {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &TypingCoordinator{
		ttl:     ttl,
		entries: make(map[typingKey]typingEntry),
	}
}

// Touch переводит пару в состояние «печатает» либо освежает отметку времени.
func (t *TypingCoordinator) Touch(roomID, userID, userName, connID string, direct bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[typingKey{roomID, userID}] = typingEntry{
		userName: userName,
		connID:   connID,
		direct:   direct,
		seen:     time.Now(),
	}
}

// Clear снимает состояние; false — записи и не было.
func (t *TypingCoordinator) Clear(roomID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := typingKey{roomID, userID}
	if _, ok := t.entries[k]; !ok {
		return false
	}
	delete(t.entries, k)

	return true
}

// Active возвращает пользователей, печатающих в комнате.
func (t *TypingCoordinator) Active(roomID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var users []string
	for k := range t.entries {
		if k.roomID == roomID {
			users = append(users, k.userID)
		}
	}

	return users
}

// ExpiredTyping — просроченная запись, по которой нужно разослать stop-событие.
type ExpiredTyping struct {
	RoomID   string
	UserID   string
	UserName string
	ConnID   string
	Direct   bool
}

// Sweep выметает записи старше TTL и отдаёт их вызывающему для рассылки.
func (t *TypingCoordinator) Sweep(now time.Time) []ExpiredTyping {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []ExpiredTyping
	for k, e := range t.entries {
		if now.Sub(e.seen) < t.ttl {
			continue
		}
		delete(t.entries, k)
		expired = append(expired, ExpiredTyping{
			RoomID:   k.roomID,
			UserID:   k.userID,
			UserName: e.userName,
			ConnID:   e.connID,
			Direct:   e.direct,
		})
	}

	return expired
}
