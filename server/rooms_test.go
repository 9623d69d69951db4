package main

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	t "github.com/gs7776/kuzzle/server/store/types"
)

func testSession(sid string) *Session {
	return &Session{
		proto: LOCAL,
		sid:   sid,
		send:  make(chan any, 256),
		stop:  make(chan any, 1),
	}
}

// drainNotification reads one queued notification off the session.
func drainNotification(tt *testing.T, sess *Session) *NotificationObject {
	tt.Helper()
	select {
	case msg := <-sess.send:
		raw, ok := msg.([]byte)
		if !ok {
			tt.Fatalf("unexpected message type %T", msg)
		}
		var note NotificationObject
		if err := json.Unmarshal(raw, &note); err != nil {
			tt.Fatalf("unparseable notification: %v", err)
		}
		return &note
	default:
		tt.Fatal("no notification queued")
		return nil
	}
}

func TestRoomsSharedRoom(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")
	s2 := testSession("s2")

	id1, count1 := rr.Subscribe(s1, "idx", "coll", Filter{"status": "open"})
	id2, count2 := rr.Subscribe(s2, "idx", "coll", Filter{"status": "open"})

	if id1 != id2 {
		tt.Error("equal filters created separate rooms")
	}
	if count1 != 1 || count2 != 2 {
		tt.Errorf("expected counts 1 and 2, got %d and %d", count1, count2)
	}

	// A different filter is a different room.
	id3, _ := rr.Subscribe(s1, "idx", "coll", Filter{"status": "closed"})
	if id3 == id1 {
		tt.Error("different filters shared a room")
	}
}

func TestRoomsSubscribeIdempotent(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")

	id1, _ := rr.Subscribe(s1, "idx", "coll", Filter{})
	id2, count := rr.Subscribe(s1, "idx", "coll", Filter{})

	if id1 != id2 || count != 1 {
		tt.Errorf("double subscribe not idempotent: count %d", count)
	}
}

func TestRoomsUnsubscribe(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")
	s2 := testSession("s2")

	roomId, _ := rr.Subscribe(s1, "idx", "coll", Filter{})
	rr.Subscribe(s2, "idx", "coll", Filter{})

	if err := rr.Unsubscribe(s1, roomId); err != nil {
		tt.Fatalf("Unsubscribe failed: %v", err)
	}
	if count, err := rr.CountSubscribers(roomId); err != nil || count != 1 {
		tt.Errorf("expected 1 subscriber left, got %d, %v", count, err)
	}

	// Unsubscribing a session which is not subscribed.
	if err := rr.Unsubscribe(s1, roomId); err != t.ErrNotFound {
		tt.Errorf("expected ErrNotFound, got %v", err)
	}

	// The last unsubscribe destroys the room.
	if err := rr.Unsubscribe(s2, roomId); err != nil {
		tt.Fatalf("Unsubscribe failed: %v", err)
	}
	if _, err := rr.CountSubscribers(roomId); err != t.ErrNotFound {
		tt.Errorf("expected ErrNotFound for destroyed room, got %v", err)
	}
	if err := rr.Unsubscribe(s1, "no-such-room"); err != t.ErrNotFound {
		tt.Errorf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestRoomsRoomRecreated(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")

	roomId, _ := rr.Subscribe(s1, "idx", "coll", Filter{"a": float64(1)})
	if err := rr.Unsubscribe(s1, roomId); err != nil {
		tt.Fatal(err)
	}

	// The same filter lands in a fresh room with the same ID.
	again, count := rr.Subscribe(s1, "idx", "coll", Filter{"a": float64(1)})
	if again != roomId || count != 1 {
		tt.Errorf("recreated room: id %q, count %d", again, count)
	}
}

func TestRoomsUnsubscribeAll(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")
	s2 := testSession("s2")

	r1, _ := rr.Subscribe(s1, "idx", "coll", Filter{})
	rr.Subscribe(s1, "idx", "coll", Filter{"a": float64(1)})
	rr.Subscribe(s2, "idx", "coll", Filter{})

	rr.UnsubscribeAll(s1)

	if count, err := rr.CountSubscribers(r1); err != nil || count != 1 {
		tt.Errorf("shared room after UnsubscribeAll: %d, %v", count, err)
	}
	if got := len(rr.RealtimeCollections("idx")); got != 1 {
		tt.Errorf("expected 1 realtime collection, got %d", got)
	}

	// Idempotent for sessions with no subscriptions.
	rr.UnsubscribeAll(s1)
	rr.UnsubscribeAll(testSession("never-subscribed"))
}

func TestRoomsRealtimeCollections(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")

	rr.Subscribe(s1, "idx", "zebra", Filter{})
	rr.Subscribe(s1, "idx", "alpha", Filter{})
	rr.Subscribe(s1, "other", "hidden", Filter{})

	got := rr.RealtimeCollections("idx")
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zebra" {
		tt.Errorf("unexpected collections: %v", got)
	}
	if got := rr.RealtimeCollections("empty"); len(got) != 0 {
		tt.Errorf("expected no collections, got %v", got)
	}
}

func TestRoomsNotify(tt *testing.T) {
	rr := NewRoomRegistry()
	open := testSession("open")
	closed := testSession("closed")
	all := testSession("all")

	rr.Subscribe(open, "idx", "coll", Filter{"status": "open"})
	rr.Subscribe(closed, "idx", "coll", Filter{"status": "closed"})
	roomAll, _ := rr.Subscribe(all, "idx", "coll", Filter{})

	queued := rr.Notify("idx", "coll", "create",
		map[string]any{"_id": "d1", "status": "open"})
	if queued != 2 {
		tt.Errorf("expected 2 deliveries, got %d", queued)
	}

	note := drainNotification(tt, open)
	if note.Action != "create" || note.Index != "idx" || note.Collection != "coll" {
		tt.Errorf("unexpected notification: %+v", note)
	}
	if note.Content["_id"] != "d1" {
		tt.Errorf("unexpected content: %v", note.Content)
	}

	note = drainNotification(tt, all)
	if note.Room != roomAll {
		tt.Errorf("notification carries wrong room: %q", note.Room)
	}

	select {
	case msg := <-closed.send:
		tt.Errorf("non-matching session got a notification: %v", msg)
	default:
	}
}

func TestRoomsNotifyWrongCollection(tt *testing.T) {
	rr := NewRoomRegistry()
	s1 := testSession("s1")

	rr.Subscribe(s1, "idx", "coll", Filter{})

	if queued := rr.Notify("idx", "other", "create", map[string]any{"_id": "d1"}); queued != 0 {
		tt.Errorf("notification crossed collections: %d", queued)
	}
	if queued := rr.Notify("other", "coll", "create", map[string]any{"_id": "d1"}); queued != 0 {
		tt.Errorf("notification crossed indexes: %d", queued)
	}
}

func TestRoomsNotifyDeadSession(tt *testing.T) {
	rr := NewRoomRegistry()
	dead := &Session{proto: LOCAL, sid: "dead"} // no send queue

	rr.Subscribe(dead, "idx", "coll", Filter{})

	if queued := rr.Notify("idx", "coll", "create", map[string]any{"_id": "d1"}); queued != 0 {
		tt.Errorf("delivery counted for a dead session: %d", queued)
	}
}

func TestRoomsConcurrent(tt *testing.T) {
	rr := NewRoomRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess := testSession(fmt.Sprintf("s%d", n))
			roomId, _ := rr.Subscribe(sess, "idx", "coll", Filter{"shard": float64(n % 4)})
			rr.Notify("idx", "coll", "create",
				map[string]any{"_id": fmt.Sprintf("d%d", n), "shard": float64(n % 4)})
			if err := rr.Unsubscribe(sess, roomId); err != nil {
				tt.Errorf("Unsubscribe failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := rr.RealtimeCollections("idx"); len(got) != 0 {
		tt.Errorf("rooms leaked: %v", got)
	}
}
