package main

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/gs7776/kuzzle/server/security"
	"github.com/gs7776/kuzzle/server/store"
	"github.com/gs7776/kuzzle/server/store/mock_store"
	t "github.com/gs7776/kuzzle/server/store/types"
)

type funnelFixture struct {
	documents   *mock_store.MockDocumentsObjMapperInterface
	collections *mock_store.MockCollectionsObjMapperInterface
	validations *mock_store.MockValidationsObjMapperInterface
}

// setupFunnel wires fresh globals and swaps the storage mappers for mocks.
func setupFunnel(tt *testing.T) *funnelFixture {
	tt.Helper()
	ctrl := gomock.NewController(tt)

	fix := &funnelFixture{
		documents:   mock_store.NewMockDocumentsObjMapperInterface(ctrl),
		collections: mock_store.NewMockCollectionsObjMapperInterface(ctrl),
		validations: mock_store.NewMockValidationsObjMapperInterface(ctrl),
	}

	prevDocs, prevColls, prevVals := store.Documents, store.Collections, store.Validations
	store.Documents = fix.documents
	store.Collections = fix.collections
	store.Validations = fix.validations

	globals.registry = NewRoomRegistry()
	globals.hooks = NewHookBus()
	globals.funnel = NewFunnel(globals.hooks)
	globals.sessionStore = NewSessionStore()
	globals.anonUser = hydratedUser(tt, security.AnonymousId, security.DefaultAnonymousRole())

	tt.Cleanup(func() {
		store.Documents, store.Collections, store.Validations = prevDocs, prevColls, prevVals
		ctrl.Finish()
	})
	return fix
}

// hydratedUser builds a user backed by a single hydrated role.
func hydratedUser(tt *testing.T, id string, def *t.RoleDef) *security.User {
	tt.Helper()
	role := &security.Role{}
	if err := security.HydrateRole(role, def); err != nil {
		tt.Fatalf("HydrateRole failed: %v", err)
	}
	return &security.User{
		Id:      id,
		Profile: &security.Profile{Id: id, Roles: []*security.Role{role}},
	}
}

// adminSession returns a session logged in as a user allowed everything.
func adminSession(tt *testing.T) *Session {
	sess := testSession("admin")
	sess.user.Store(hydratedUser(tt, "admin", &t.RoleDef{
		Id: "admin",
		Indexes: map[string]map[string]map[string]any{
			"*": {"*": {"*": true}},
		},
	}))
	return sess
}

func exec(sess *Session, controller, action string, body map[string]any) *ResponseObject {
	return globals.funnel.Execute(&RequestObject{
		Id:         "req-1",
		Controller: controller,
		Action:     action,
		Index:      "idx",
		Collection: "coll",
		Body:       body,
	}, sess)
}

func TestFunnelUnknownRoute(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)

	resp := exec(sess, "bogus", "get", nil)
	if resp.Status != http.StatusBadRequest {
		tt.Errorf("unknown controller: status %d", resp.Status)
	}
	if resp.Error != "unknown controller 'bogus'" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}

	resp = exec(sess, "read", "bogus", nil)
	if resp.Status != http.StatusBadRequest {
		tt.Errorf("unknown action: status %d", resp.Status)
	}
	if resp.Error != "unknown action 'read:bogus'" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelPermissionDenied(tt *testing.T) {
	setupFunnel(tt)

	// Anonymous sessions may read but not write. The storage mocks expect
	// no calls: a denied request must never reach the store.
	sess := testSession("anon")

	resp := exec(sess, "write", "create", map[string]any{"a": float64(1)})
	if resp.Status != http.StatusForbidden {
		tt.Errorf("expected 403, got %d", resp.Status)
	}
	resp = exec(sess, "admin", "truncateCollection", nil)
	if resp.Status != http.StatusForbidden {
		tt.Errorf("expected 403, got %d", resp.Status)
	}
}

func TestFunnelAnonymousCanRead(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := testSession("anon")

	fix.documents.EXPECT().Get("idx", "coll", "d1").Return(&t.Document{
		Id: "d1", Content: map[string]any{"a": float64(1)},
	}, nil)

	resp := exec(sess, "read", "get", map[string]any{"_id": "d1"})
	if resp.Status != http.StatusOK {
		tt.Errorf("expected 200, got %d: %s", resp.Status, resp.Error)
	}
}

func TestFunnelResponseEcho(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)

	resp := exec(sess, "read", "now", nil)
	if resp.Id != "req-1" || resp.Controller != "read" || resp.Action != "now" ||
		resp.Index != "idx" || resp.Collection != "coll" {
		tt.Errorf("response does not echo the request: %+v", resp)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok || result["now"] == nil {
		tt.Errorf("unexpected result: %v", resp.Result)
	}
}

func TestFunnelHookOrdering(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)
	var order []string

	globals.hooks.OnBefore("read:now", func(req *RequestObject) error {
		order = append(order, "before")
		return nil
	})
	globals.hooks.OnAfter("read:now", func(req *RequestObject, resp *ResponseObject) {
		order = append(order, "after")
		if resp.Status != http.StatusOK {
			tt.Errorf("after hook saw status %d", resp.Status)
		}
	})

	if resp := exec(sess, "read", "now", nil); resp.Status != http.StatusOK {
		tt.Fatalf("unexpected status %d", resp.Status)
	}
	if len(order) != 2 || order[0] != "before" || order[1] != "after" {
		tt.Errorf("unexpected hook order: %v", order)
	}
}

func TestFunnelHookAbort(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)
	var afterRan bool

	globals.hooks.OnBefore("write:create", func(req *RequestObject) error {
		return Abort(nil)
	})
	globals.hooks.OnAfter("write:create", func(req *RequestObject, resp *ResponseObject) {
		afterRan = true
	})

	// The storage mock expects no calls: the abort fires before dispatch.
	resp := exec(sess, "write", "create", map[string]any{"a": float64(1)})
	if resp.Status != http.StatusForbidden {
		tt.Errorf("expected 403, got %d", resp.Status)
	}
	if resp.Error == "" {
		tt.Error("aborted response carries no error")
	}
	if !afterRan {
		tt.Error("after hook skipped for an aborted request")
	}
}

func TestFunnelHookAbortClassified(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)

	// An abort wrapping a storage error answers with that error's status
	// instead of the generic 403.
	globals.hooks.OnBefore("write:create", func(req *RequestObject) error {
		return Abort(t.ErrNotFound)
	})

	resp := exec(sess, "write", "create", map[string]any{"a": float64(1)})
	if resp.Status != http.StatusNotFound {
		tt.Errorf("expected 404, got %d", resp.Status)
	}

	globals.hooks.OnBefore("write:delete", func(req *RequestObject) error {
		return Abort(t.ErrAlreadyExists)
	})
	resp = exec(sess, "write", "delete", map[string]any{"_id": "d1"})
	if resp.Status != http.StatusPreconditionFailed {
		tt.Errorf("expected 412, got %d", resp.Status)
	}
}

func TestFunnelReadGet(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	fix.documents.EXPECT().Get("idx", "coll", "d1").Return(&t.Document{
		Id: "d1", Content: map[string]any{"status": "open"},
	}, nil)

	resp := exec(sess, "read", "get", map[string]any{"_id": "d1"})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["_id"] != "d1" {
		tt.Errorf("unexpected result: %v", result)
	}
	source := result["_source"].(map[string]any)
	if source["status"] != "open" {
		tt.Errorf("unexpected source: %v", source)
	}

	// Missing document.
	fix.documents.EXPECT().Get("idx", "coll", "gone").Return(nil, nil)
	resp = exec(sess, "read", "get", map[string]any{"_id": "gone"})
	if resp.Status != http.StatusNotFound {
		tt.Errorf("expected 404, got %d", resp.Status)
	}
	if resp.Error != "document 'gone' not found" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}

	// Missing _id.
	resp = exec(sess, "read", "get", nil)
	if resp.Status != http.StatusBadRequest {
		tt.Errorf("expected 400, got %d", resp.Status)
	}
}

func TestFunnelReadSearch(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	fix.documents.EXPECT().
		Search("idx", "coll", &t.Query{Filter: map[string]any{"status": "open"}, Limit: 10, Offset: 5}).
		Return([]t.Document{
			{Id: "d1", Content: map[string]any{"status": "open"}},
			{Id: "d2", Content: map[string]any{"status": "open"}},
		}, nil)

	resp := exec(sess, "read", "search", map[string]any{
		"filter": map[string]any{"status": "open"},
		"size":   float64(10),
		"from":   float64(5),
	})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["total"] != 2 {
		tt.Errorf("unexpected total: %v", result["total"])
	}
	hits := result["hits"].([]map[string]any)
	if len(hits) != 2 || hits[0]["_id"] != "d1" {
		tt.Errorf("unexpected hits: %v", hits)
	}
}

func TestFunnelReadCount(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	fix.documents.EXPECT().Count("idx", "coll", &t.Query{Filter: map[string]any{}}).
		Return(int64(42), nil)

	resp := exec(sess, "read", "count", nil)
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d", resp.Status)
	}
	if result := resp.Result.(map[string]any); result["count"] != int64(42) {
		tt.Errorf("unexpected count: %v", result["count"])
	}
}

func TestFunnelListCollections(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	globals.registry.Subscribe(testSession("sub"), "idx", "virtual", Filter{})
	fix.collections.EXPECT().List("idx").Return([]string{"stored1", "stored2"}, nil)

	resp := exec(sess, "read", "listCollections", nil)
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["type"] != "all" {
		tt.Errorf("unexpected type: %v", result["type"])
	}
	collections := result["collections"].(map[string][]string)
	if len(collections["realtime"]) != 1 || collections["realtime"][0] != "virtual" {
		tt.Errorf("unexpected realtime facet: %v", collections["realtime"])
	}
	if len(collections["stored"]) != 2 {
		tt.Errorf("unexpected stored facet: %v", collections["stored"])
	}

	// The realtime facet never touches the storage engine.
	resp = exec(sess, "read", "listCollections", map[string]any{"type": "realtime"})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d", resp.Status)
	}
	collections = resp.Result.(map[string]any)["collections"].(map[string][]string)
	if _, present := collections["stored"]; present {
		tt.Error("stored facet present in a realtime-only listing")
	}

	resp = exec(sess, "read", "listCollections", map[string]any{"type": "bogus"})
	if resp.Status != http.StatusBadRequest {
		tt.Errorf("expected 400, got %d", resp.Status)
	}
	if resp.Error != "invalid type argument 'bogus', expected 'all', 'stored' or 'realtime'" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelWriteCreate(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	// A subscriber on the collection observes the write.
	watcher := testSession("watcher")
	globals.registry.Subscribe(watcher, "idx", "coll", Filter{"status": "open"})

	fix.validations.EXPECT().Get("idx", "coll").Return(nil, nil)
	fix.documents.EXPECT().Create("idx", "coll", gomock.Any()).
		DoAndReturn(func(index, collection string, doc *t.Document) error {
			doc.CreatedAt = t.TimeNow()
			doc.UpdatedAt = doc.CreatedAt
			return nil
		})

	resp := exec(sess, "write", "create", map[string]any{"_id": "d1", "status": "open"})
	if resp.Status != http.StatusCreated {
		tt.Fatalf("expected 201, got %d: %s", resp.Status, resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["_id"] != "d1" {
		tt.Errorf("unexpected result: %v", result)
	}

	note := drainNotification(tt, watcher)
	if note.Action != "create" || note.Content["_id"] != "d1" || note.Content["status"] != "open" {
		tt.Errorf("unexpected notification: %+v", note)
	}
}

func TestFunnelWriteCreateDuplicate(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	fix.validations.EXPECT().Get("idx", "coll").Return(nil, nil)
	fix.documents.EXPECT().Create("idx", "coll", gomock.Any()).Return(t.ErrAlreadyExists)

	resp := exec(sess, "write", "create", map[string]any{"_id": "d1"})
	if resp.Status != http.StatusPreconditionFailed {
		tt.Errorf("expected 412, got %d", resp.Status)
	}
	if resp.Error != "document already exists" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelWriteCreateValidation(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	spec := &t.SpecDef{
		Index: "idx", Collection: "coll",
		Fields: map[string]t.FieldSpec{
			"name": {Type: "text", Mandatory: true},
		},
	}
	// An invalid document never reaches the storage engine.
	fix.validations.EXPECT().Get("idx", "coll").Return(spec, nil)

	resp := exec(sess, "write", "create", map[string]any{"age": float64(1)})
	if resp.Status != http.StatusBadRequest {
		tt.Fatalf("expected 400, got %d", resp.Status)
	}
	if resp.Error != "The field \"name\" is mandatory." {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelWriteCreateBrokenSpec(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	// A stored specification with invalid type options is the operator's
	// fault, not the client's: precondition failure, not bad request.
	spec := &t.SpecDef{
		Index: "idx", Collection: "coll",
		Fields: map[string]t.FieldSpec{
			"age": {Type: "numeric", Options: map[string]any{
				"range": map[string]any{"min": "x"},
			}},
		},
	}
	fix.validations.EXPECT().Get("idx", "coll").Return(spec, nil)

	resp := exec(sess, "write", "create", map[string]any{"age": float64(1)})
	if resp.Status != http.StatusPreconditionFailed {
		tt.Fatalf("expected 412, got %d", resp.Status)
	}
	if resp.Error != "Invalid \"range.min\" option: must be of type \"number\"" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelWriteUpdatePartial(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	spec := &t.SpecDef{
		Index: "idx", Collection: "coll",
		Fields: map[string]t.FieldSpec{
			"name": {Type: "text", Mandatory: true},
			"age":  {Type: "numeric"},
		},
	}
	// A partial update not touching the mandatory field passes validation.
	fix.validations.EXPECT().Get("idx", "coll").Return(spec, nil)
	fix.documents.EXPECT().Update("idx", "coll", "d1", map[string]any{"age": float64(31)}).
		Return(&t.Document{
			Id: "d1", Content: map[string]any{"name": "alice", "age": float64(31)},
		}, nil)

	resp := exec(sess, "write", "update", map[string]any{"_id": "d1", "age": float64(31)})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}

	// Updating a missing document.
	fix.validations.EXPECT().Get("idx", "coll").Return(nil, nil)
	fix.documents.EXPECT().Update("idx", "coll", "gone", gomock.Any()).
		Return(nil, t.ErrNotFound)
	resp = exec(sess, "write", "update", map[string]any{"_id": "gone", "age": float64(1)})
	if resp.Status != http.StatusNotFound {
		tt.Errorf("expected 404, got %d", resp.Status)
	}
}

func TestFunnelWriteDelete(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	watcher := testSession("watcher")
	globals.registry.Subscribe(watcher, "idx", "coll", Filter{})

	fix.documents.EXPECT().Delete("idx", "coll", "d1").Return(nil)

	resp := exec(sess, "write", "delete", map[string]any{"_id": "d1"})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}

	note := drainNotification(tt, watcher)
	if note.Action != "delete" || note.Content["_id"] != "d1" {
		tt.Errorf("unexpected notification: %+v", note)
	}
}

func TestFunnelSubscribeRoundTrip(tt *testing.T) {
	setupFunnel(tt)
	sess := adminSession(tt)

	resp := exec(sess, "subscribe", "on", map[string]any{
		"filter": map[string]any{"status": "open"},
	})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d: %s", resp.Status, resp.Error)
	}
	roomId := resp.Room
	if roomId == "" {
		tt.Fatal("subscribe response carries no room ID")
	}

	resp = exec(sess, "subscribe", "count", map[string]any{"roomId": roomId})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d", resp.Status)
	}
	if result := resp.Result.(map[string]any); result["count"] != 1 {
		tt.Errorf("unexpected count: %v", result["count"])
	}

	resp = exec(sess, "subscribe", "off", map[string]any{"roomId": roomId})
	if resp.Status != http.StatusOK {
		tt.Fatalf("expected 200, got %d", resp.Status)
	}

	// The room is gone.
	resp = exec(sess, "subscribe", "count", map[string]any{"roomId": roomId})
	if resp.Status != http.StatusNotFound {
		tt.Errorf("expected 404, got %d", resp.Status)
	}
	if resp.Error != "room '"+roomId+"' not found" {
		tt.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestFunnelAdmin(tt *testing.T) {
	fix := setupFunnel(tt)
	sess := adminSession(tt)

	fix.collections.EXPECT().Truncate("idx", "coll").Return(nil)
	resp := exec(sess, "admin", "truncateCollection", nil)
	if resp.Status != http.StatusOK {
		tt.Errorf("expected 200, got %d", resp.Status)
	}

	fix.collections.EXPECT().Delete("idx", "coll").Return(t.ErrNotFound)
	resp = exec(sess, "admin", "deleteCollection", nil)
	if resp.Status != http.StatusNotFound {
		tt.Errorf("expected 404, got %d", resp.Status)
	}
}
