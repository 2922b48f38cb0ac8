package ws

import (
	"context"
	"sync"
	"testing"

	"github.com/NewBeeD/NamePlaceAnimalThing/internal/game"
	"github.com/NewBeeD/NamePlaceAnimalThing/internal/grading"
)

type fakeConn struct {
	id    string
	mu    sync.Mutex
	rooms map[string]bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, rooms: make(map[string]bool)}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Join(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = true
}

func (c *fakeConn) Leave(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

func (c *fakeConn) Emit(string, ...interface{}) {}

func (c *fakeConn) inRoom(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms[room]
}

// membershipBroadcaster records, for every broadcast, whether the watched
// connection was already in the target group when the event fired.
type membershipBroadcaster struct {
	conn   *fakeConn
	mu     sync.Mutex
	events []string
	missed []string
}

func (b *membershipBroadcaster) ToRoom(code, event string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	if !b.conn.inRoom(code) {
		b.missed = append(b.missed, event)
	}
}

func (b *membershipBroadcaster) CloseRoom(string) {}

type nopGrader struct{}

func (nopGrader) Validate(context.Context, string, string, []grading.Entry) (map[string]grading.Verdict, error) {
	return map[string]grading.Verdict{}, nil
}

func TestHandleJoinDeliversInitialSnapshot(t *testing.T) {
	srv := New()
	c := newFakeConn("conn1")
	broadcaster := &membershipBroadcaster{conn: c}
	srv.SetRegistry(game.NewRegistry(broadcaster, nopGrader{}))

	reply := srv.handleJoin(c, joinPayload{Code: "4242", UserID: "u1", Username: "Host", Settings: &game.Settings{}})
	if reply["ok"] != true {
		t.Fatalf("join should succeed, got %v", reply)
	}

	if len(broadcaster.events) != 2 {
		t.Fatalf("expected roster and state broadcasts, got %v", broadcaster.events)
	}
	// The creator is the only member; every join-time broadcast must be able
	// to reach them.
	if len(broadcaster.missed) != 0 {
		t.Fatalf("joiner was outside the group for %v", broadcaster.missed)
	}
	if srv.members["4242"]["conn1"] == nil {
		t.Fatal("member map should track the joiner")
	}
}

func TestHandleJoinBacksOutOnRejection(t *testing.T) {
	srv := New()
	c := newFakeConn("conn1")
	broadcaster := &membershipBroadcaster{conn: c}
	srv.SetRegistry(game.NewRegistry(broadcaster, nopGrader{}))

	// Unknown room without settings is rejected by the registry.
	reply := srv.handleJoin(c, joinPayload{Code: "4242", UserID: "u1", Username: "Host"})
	if reply["ok"] != false {
		t.Fatalf("join should be rejected, got %v", reply)
	}
	if c.inRoom("4242") {
		t.Fatal("rejected joiner must leave the broadcast group again")
	}
	if len(srv.members["4242"]) != 0 {
		t.Fatal("rejected joiner must not stay in the member map")
	}
}
