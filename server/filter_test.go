package main

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterRoomIdDeterministic(t *testing.T) {
	a := Filter{"status": "open", "city": "paris"}
	b := Filter{"city": "paris", "status": "open"}

	if a.RoomId("idx", "coll") != b.RoomId("idx", "coll") {
		t.Error("equal filters produced different room IDs")
	}
	if len(a.RoomId("idx", "coll")) != 64 {
		t.Errorf("unexpected room ID length: %q", a.RoomId("idx", "coll"))
	}
}

func TestFilterRoomIdDistinct(t *testing.T) {
	f := Filter{"status": "open"}

	base := f.RoomId("idx", "coll")
	if f.RoomId("idx", "other") == base {
		t.Error("same room ID across collections")
	}
	if f.RoomId("other", "coll") == base {
		t.Error("same room ID across indexes")
	}
	if (Filter{"status": "closed"}).RoomId("idx", "coll") == base {
		t.Error("same room ID for different filters")
	}
	if (Filter{}).RoomId("idx", "coll") == base {
		t.Error("same room ID for empty filter")
	}
}

func TestFilterRoomIdWireEquivalence(t *testing.T) {
	// A filter decoded from the wire must land in the same room as one
	// built in code.
	var body map[string]any
	if err := json.Unmarshal([]byte(`{"filter":{"status":"open","priority":3}}`), &body); err != nil {
		t.Fatal(err)
	}
	decoded, ok := parseFilter(body)
	if !ok {
		t.Fatal("parseFilter rejected a valid filter")
	}

	built := Filter{"status": "open", "priority": float64(3)}
	if diff := cmp.Diff(built, decoded); diff != "" {
		t.Errorf("decoded filter differs (-want +got):\n%s", diff)
	}
	if decoded.RoomId("idx", "coll") != built.RoomId("idx", "coll") {
		t.Error("decoded and built filters produced different room IDs")
	}
}

func TestFilterMatch(t *testing.T) {
	f := Filter{"status": "open", "priority": float64(3)}

	if !f.Match(map[string]any{"status": "open", "priority": float64(3), "extra": "x"}) {
		t.Error("matching content rejected")
	}
	if f.Match(map[string]any{"status": "open", "priority": float64(4)}) {
		t.Error("wrong value matched")
	}
	if f.Match(map[string]any{"status": "open"}) {
		t.Error("content missing a predicate field matched")
	}
	if f.Match(nil) {
		t.Error("nil content matched a non-empty filter")
	}
}

func TestFilterMatchAbsentField(t *testing.T) {
	// An absent field never matches, even against a nil predicate.
	f := Filter{"deleted": nil}

	if f.Match(map[string]any{"status": "open"}) {
		t.Error("absent field matched nil predicate")
	}
	if !f.Match(map[string]any{"deleted": nil}) {
		t.Error("explicit null did not match nil predicate")
	}
}

func TestFilterMatchNested(t *testing.T) {
	f := Filter{"tags": []any{"a", "b"}}

	if !f.Match(map[string]any{"tags": []any{"a", "b"}}) {
		t.Error("deep-equal slice rejected")
	}
	if f.Match(map[string]any{"tags": []any{"b", "a"}}) {
		t.Error("reordered slice matched")
	}
}

func TestFilterMatchAll(t *testing.T) {
	f := Filter{}

	if !f.Match(map[string]any{"anything": 1}) || !f.Match(nil) {
		t.Error("empty filter must match every document")
	}
}

func TestParseFilter(t *testing.T) {
	if f, ok := parseFilter(nil); !ok || len(f) != 0 {
		t.Error("nil body must yield the match-all filter")
	}
	if f, ok := parseFilter(map[string]any{}); !ok || len(f) != 0 {
		t.Error("missing filter must yield the match-all filter")
	}
	if f, ok := parseFilter(map[string]any{"filter": nil}); !ok || len(f) != 0 {
		t.Error("null filter must yield the match-all filter")
	}
	if f, ok := parseFilter(map[string]any{"filter": map[string]any{"a": float64(1)}}); !ok || len(f) != 1 {
		t.Error("object filter not parsed")
	}
	if _, ok := parseFilter(map[string]any{"filter": "a=1"}); ok {
		t.Error("string filter accepted")
	}
	if _, ok := parseFilter(map[string]any{"filter": []any{"a"}}); ok {
		t.Error("array filter accepted")
	}
}
