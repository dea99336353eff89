package relay

import (
	"errors"
	"testing"

	"github.com/qwisky/relay-service/internal/domain"
)

func TestRegistry_AdmitAssignsUniqueIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Admit(&fakeConn{})
	b := r.Admit(&fakeConn{})

	if a == "" || b == "" || a == b {
		t.Fatalf("expected unique non-empty ids, got %q and %q", a, b)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", r.Len())
	}
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	id := r.Admit(&fakeConn{})
	_ = r.AddRoom(id, "room-1")
	_ = r.AddRoom(id, "room-2")

	conn, rooms := r.Remove(id)
	if conn == nil || len(rooms) != 2 {
		t.Fatalf("expected conn and 2 rooms, got %v, %v", conn, rooms)
	}

	conn, rooms = r.Remove(id)
	if conn != nil || rooms != nil {
		t.Fatal("second remove must be a no-op")
	}
}

func TestRegistry_RoomTracking(t *testing.T) {
	r := NewRegistry()
	id := r.Admit(&fakeConn{})

	if err := r.AddRoom(id, "room-1"); err != nil {
		t.Fatalf("AddRoom for live connection: %v", err)
	}
	if got := r.Rooms(id); len(got) != 1 || got[0] != "room-1" {
		t.Fatalf("unexpected rooms: %v", got)
	}

	r.RemoveRoom(id, "room-1")
	if got := r.Rooms(id); len(got) != 0 {
		t.Fatalf("expected empty room set, got %v", got)
	}

	if err := r.AddRoom("no-such-conn", "room-1"); !errors.Is(err, domain.ErrUnknownConnection) {
		t.Fatalf("expected ErrUnknownConnection, got %v", err)
	}
}

func TestRegistry_BroadcastAllExcludesSender(t *testing.T) {
	r := NewRegistry()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	idA := r.Admit(a)
	r.Admit(b)
	r.Admit(c)

	r.BroadcastAll(newMessage(EventUserStatusChange, StatusChangePayload{UserID: "u1", IsOnline: true}), idA)

	if a.count() != 0 {
		t.Fatal("sender must be excluded from global fan-out")
	}
	if b.count() != 1 || c.count() != 1 {
		t.Fatalf("expected delivery to all others, got b=%d c=%d", b.count(), c.count())
	}
}
