package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gs7776/kuzzle/server/security"
)

func TestQueueOutSerialization(t *testing.T) {
	s := testSession("s1")

	if !s.queueOut(OkReply(&RequestObject{Id: "r1"}, nil)) {
		t.Fatal("queueOut failed")
	}
	raw := (<-s.send).([]byte)
	var resp ResponseObject
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unparseable response: %v", err)
	}
	if resp.Id != "r1" || resp.Status != http.StatusOK {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Raw bytes pass through untouched.
	if !s.queueOut([]byte("{}")) {
		t.Fatal("queueOut failed for raw bytes")
	}
	if got := (<-s.send).([]byte); string(got) != "{}" {
		t.Errorf("raw bytes mangled: %q", got)
	}
}

func TestQueueOutDeadSession(t *testing.T) {
	var s *Session
	if s.queueOut([]byte("{}")) {
		t.Error("queueOut succeeded on a nil session")
	}

	s = &Session{proto: LOCAL, sid: "no-queue"}
	if s.queueOut([]byte("{}")) {
		t.Error("queueOut succeeded with no send queue")
	}
}

func TestQueueOutFullQueue(t *testing.T) {
	s := &Session{proto: LOCAL, sid: "slow", send: make(chan any, 1)}

	if !s.queueOut([]byte("{}")) {
		t.Fatal("first send failed")
	}
	// The queue is full: the message is dropped, the caller not blocked.
	if s.queueOut([]byte("{}")) {
		t.Error("send to a full queue reported success")
	}
}

func TestDispatchRawMalformed(t *testing.T) {
	s := testSession("s1")

	s.dispatchRaw([]byte("this is not json"))

	raw := (<-s.send).([]byte)
	var resp ResponseObject
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.Status)
	}
}

func TestCurrentUserFallback(t *testing.T) {
	prev := globals.anonUser
	globals.anonUser = &security.User{Id: security.AnonymousId}
	defer func() { globals.anonUser = prev }()

	s := testSession("s1")
	if u := s.currentUser(); !u.IsAnonymous() {
		t.Errorf("expected the anonymous user, got %q", u.Id)
	}

	s.user.Store(&security.User{Id: "alice"})
	if u := s.currentUser(); u.Id != "alice" {
		t.Errorf("expected alice, got %q", u.Id)
	}

	// Logout drops back to anonymous.
	s.user.Store(nil)
	if u := s.currentUser(); !u.IsAnonymous() {
		t.Errorf("expected the anonymous user after logout, got %q", u.Id)
	}
}

func TestSessionStore(t *testing.T) {
	ss := NewSessionStore()

	s1, count := ss.NewSession(nil, "sid-1")
	if count != 1 || s1.proto != LOCAL || s1.sid != "sid-1" {
		t.Fatalf("unexpected session: %+v, count %d", s1, count)
	}
	s2, count := ss.NewSession(nil, "sid-2")
	if count != 2 {
		t.Fatalf("expected 2 sessions, got %d", count)
	}

	if got := ss.Get("sid-1"); got != s1 {
		t.Error("Get returned the wrong session")
	}
	if got := ss.Get("unknown"); got != nil {
		t.Errorf("Get returned a session for an unknown ID: %v", got)
	}

	if left := ss.Delete(s1); left != 1 {
		t.Errorf("expected 1 session left, got %d", left)
	}
	if got := ss.Get("sid-1"); got != nil {
		t.Error("deleted session still retrievable")
	}
	if got := ss.Get("sid-2"); got != s2 {
		t.Error("wrong session removed")
	}
}

func TestSessionStoreShutdown(t *testing.T) {
	ss := NewSessionStore()
	s1, _ := ss.NewSession(nil, "sid-1")

	ss.Shutdown()

	select {
	case msg := <-s1.stop:
		if _, ok := msg.([]byte); !ok {
			t.Errorf("unexpected shutdown message type %T", msg)
		}
	default:
		t.Error("no shutdown message delivered")
	}
}
