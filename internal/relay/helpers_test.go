package relay

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

// fakeConn записывает всё, что ему доставили; транспорт не нужен.
type fakeConn struct {
	mu     sync.Mutex
	msgs   []Message
	fail   bool
	closed bool
}

func (c *fakeConn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail {
		return errors.New("send failed")
	}
	c.msgs = append(c.msgs, msg)

	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true

	return nil
}

func (c *fakeConn) events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.msgs))
	for _, m := range c.msgs {
		out = append(out, m.Event)
	}

	return out
}

func (c *fakeConn) received(event string) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Message
	for _, m := range c.msgs {
		if m.Event == event {
			out = append(out, m)
		}
	}

	return out
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.msgs)
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal test payload: %v", err)
	}
	return b
}
