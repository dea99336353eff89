package relay

import (
	"sync"
	"time"

	"github.com/qwisky/relay-service/internal/domain"
)

// PresenceTracker хранит онлайн-статусы пользователей. Статус не привязан
// к жизни соединений: offline выставляется только явным сигналом клиента,
// поэтому данные приблизительные, не авторитетные.
type PresenceTracker struct {
	mu    sync.RWMutex
	users map[string]domain.Presence
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{users: make(map[string]domain.Presence)}
}

// SetOnline обновляет статус и штампует lastSeen.
func (p *PresenceTracker) SetOnline(userID string, online bool) domain.Presence {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := domain.Presence{
		UserID:   userID,
		IsOnline: online,
		LastSeen: time.Now(),
	}
	p.users[userID] = rec

	return rec
}

func (p *PresenceTracker) Get(userID string) (domain.Presence, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rec, ok := p.users[userID]
	return rec, ok
}

// Snapshot — срез всех известных статусов для читателей снаружи.
func (p *PresenceTracker) Snapshot() []domain.Presence {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Presence, 0, len(p.users))
	for _, rec := range p.users {
		out = append(out, rec)
	}

	return out
}
