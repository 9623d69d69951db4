/******************************************************************************
 *
 *  Description :
 *
 *    Controller actions the funnel dispatches to. Read and admin actions
 *    delegate to the storage engine; write actions additionally run the
 *    payload through the validation type system and notify the room
 *    registry; subscribe actions operate on the registry alone.
 *
 *****************************************************************************/

package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gs7776/kuzzle/server/auth"
	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/store"
	t "github.com/gs7776/kuzzle/server/store/types"
	"github.com/gs7776/kuzzle/server/validate"
)

// docResult is the wire representation of a stored document.
func docResult(doc *t.Document) map[string]any {
	return map[string]any{
		"_id":       doc.Id,
		"_source":   doc.Content,
		"createdAt": doc.CreatedAt.UnixMilli(),
		"updatedAt": doc.UpdatedAt.UnixMilli(),
	}
}

// bodyString extracts a required string field from the request body.
func bodyString(body map[string]any, field string) (string, bool) {
	if body == nil {
		return "", false
	}
	val, ok := body[field].(string)
	return val, ok && val != ""
}

// bodyInt extracts an optional integer field from the request body. JSON
// numbers decode as float64.
func bodyInt(body map[string]any, field string) int {
	if body == nil {
		return 0
	}
	if val, ok := body[field].(float64); ok {
		return int(val)
	}
	return 0
}

// parseQuery builds a storage query from the request body.
func parseQuery(req *RequestObject) (*t.Query, bool) {
	filter, ok := parseFilter(req.Body)
	if !ok {
		return nil, false
	}
	return &t.Query{
		Filter: filter,
		Limit:  bodyInt(req.Body, "size"),
		Offset: bodyInt(req.Body, "from"),
	}, true
}

func readSearch(req *RequestObject, sess *Session) *ResponseObject {
	query, ok := parseQuery(req)
	if !ok {
		return ErrMalformedReply(req, "filter must be an object")
	}

	docs, err := store.Documents.Search(req.Index, req.Collection, query)
	if err != nil {
		return decodeStoreError(err, req)
	}

	hits := make([]map[string]any, 0, len(docs))
	for i := range docs {
		hits = append(hits, docResult(&docs[i]))
	}
	return OkReply(req, map[string]any{"hits": hits, "total": len(hits)})
}

func readGet(req *RequestObject, sess *Session) *ResponseObject {
	id, ok := bodyString(req.Body, "_id")
	if !ok {
		return ErrMalformedReply(req, "missing '_id'")
	}

	doc, err := store.Documents.Get(req.Index, req.Collection, id)
	if err != nil {
		return decodeStoreError(err, req)
	}
	if doc == nil {
		return ErrNotFoundReply(req, "document '"+id+"' not found")
	}
	return OkReply(req, docResult(doc))
}

func readCount(req *RequestObject, sess *Session) *ResponseObject {
	query, ok := parseQuery(req)
	if !ok {
		return ErrMalformedReply(req, "filter must be an object")
	}

	count, err := store.Documents.Count(req.Index, req.Collection, query)
	if err != nil {
		return decodeStoreError(err, req)
	}
	return OkReply(req, map[string]any{"count": count})
}

// readListCollections merges the room registry's realtime collections with
// the collections known to the storage engine. The two facets are fetched
// independently: the stored fetch never touches the registry and vice versa.
func readListCollections(req *RequestObject, sess *Session) *ResponseObject {
	which := "all"
	if req.Body != nil {
		if v, present := req.Body["type"]; present {
			s, ok := v.(string)
			if !ok {
				return ErrMalformedReply(req, "type argument must be a string")
			}
			which = s
		}
	}

	collections := make(map[string][]string)
	switch which {
	case "all", "stored", "realtime":
	default:
		return ErrMalformedReply(req,
			"invalid type argument '"+which+"', expected 'all', 'stored' or 'realtime'")
	}

	if which == "all" || which == "realtime" {
		collections["realtime"] = globals.registry.RealtimeCollections(req.Index)
	}
	if which == "all" || which == "stored" {
		stored, err := store.Collections.List(req.Index)
		if err != nil {
			return decodeStoreError(err, req)
		}
		collections["stored"] = stored
	}

	return OkReply(req, map[string]any{"type": which, "collections": collections})
}

func readNow(req *RequestObject, sess *Session) *ResponseObject {
	return OkReply(req, map[string]any{"now": time.Now().UTC().UnixMilli()})
}

// checkWritePayload extracts the document content from a write request and
// runs it through the collection's validation specification, if one exists.
// The "_id" member is not a part of the content.
func checkWritePayload(req *RequestObject, partial bool) (string, map[string]any, *ResponseObject) {
	if len(req.Body) == 0 {
		return "", nil, ErrMalformedReply(req, "empty request body")
	}

	id, _ := req.Body["_id"].(string)
	content := make(map[string]any, len(req.Body))
	for key, val := range req.Body {
		if key != "_id" {
			content[key] = val
		}
	}

	spec, err := store.Validations.Get(req.Index, req.Collection)
	if err != nil {
		return "", nil, decodeStoreError(err, req)
	}
	if spec != nil {
		validator, err := validate.NewValidator(spec.Fields)
		if err != nil {
			logs.Warn.Println("controllers: invalid validation spec for",
				req.Index+"/"+req.Collection, ":", err)
			var specErr validate.SpecError
			if errors.As(err, &specErr) {
				return "", nil, ErrPreconditionFailedReply(req, specErr.Error())
			}
			return "", nil, ErrUnknownReply(req, "")
		}
		var valid bool
		var msgs []string
		if partial {
			valid, msgs = validator.ValidatePartial(content)
		} else {
			valid, msgs = validator.ValidateDocument(content)
		}
		if !valid {
			return "", nil, ErrMalformedReply(req, strings.Join(msgs, " "))
		}
	}

	return id, content, nil
}

// notifyChange pushes the changed document to matching rooms. Content is
// normalized first so values read back from a database driver match filters
// decoded from the wire.
func notifyChange(req *RequestObject, id string, content map[string]any) {
	content = normalizeContent(content)
	note := make(map[string]any, len(content)+1)
	for key, val := range content {
		note[key] = val
	}
	note["_id"] = id
	globals.registry.Notify(req.Index, req.Collection, req.Action, note)
}

func writeCreate(req *RequestObject, sess *Session) *ResponseObject {
	id, content, failed := checkWritePayload(req, false)
	if failed != nil {
		return failed
	}

	doc := &t.Document{Id: id, Content: content}
	if err := store.Documents.Create(req.Index, req.Collection, doc); err != nil {
		return decodeStoreError(err, req)
	}

	statsInc("DocumentsCreatedTotal", 1)
	notifyChange(req, doc.Id, doc.Content)
	return OkCreatedReply(req, docResult(doc))
}

func writeCreateOrReplace(req *RequestObject, sess *Session) *ResponseObject {
	id, content, failed := checkWritePayload(req, false)
	if failed != nil {
		return failed
	}
	if id == "" {
		return ErrMalformedReply(req, "missing '_id'")
	}

	doc := &t.Document{Id: id, Content: content}
	created, err := store.Documents.CreateOrReplace(req.Index, req.Collection, doc)
	if err != nil {
		return decodeStoreError(err, req)
	}

	notifyChange(req, doc.Id, doc.Content)
	if created {
		statsInc("DocumentsCreatedTotal", 1)
		return OkCreatedReply(req, docResult(doc))
	}
	return OkReply(req, docResult(doc))
}

func writeUpdate(req *RequestObject, sess *Session) *ResponseObject {
	id, patch, failed := checkWritePayload(req, true)
	if failed != nil {
		return failed
	}
	if id == "" {
		return ErrMalformedReply(req, "missing '_id'")
	}
	if len(patch) == 0 {
		return ErrMalformedReply(req, "empty patch")
	}

	doc, err := store.Documents.Update(req.Index, req.Collection, id, patch)
	if err != nil {
		return decodeStoreError(err, req)
	}

	notifyChange(req, doc.Id, doc.Content)
	return OkReply(req, docResult(doc))
}

func writeDelete(req *RequestObject, sess *Session) *ResponseObject {
	id, ok := bodyString(req.Body, "_id")
	if !ok {
		return ErrMalformedReply(req, "missing '_id'")
	}

	if err := store.Documents.Delete(req.Index, req.Collection, id); err != nil {
		return decodeStoreError(err, req)
	}

	globals.registry.Notify(req.Index, req.Collection, req.Action, map[string]any{"_id": id})
	return OkReply(req, map[string]any{"_id": id})
}

func subscribeOn(req *RequestObject, sess *Session) *ResponseObject {
	filter, ok := parseFilter(req.Body)
	if !ok {
		return ErrMalformedReply(req, "filter must be an object")
	}

	roomId, count := globals.registry.Subscribe(sess, req.Index, req.Collection, filter)
	resp := OkReply(req, map[string]any{"roomId": roomId, "count": count})
	resp.Room = roomId
	return resp
}

func subscribeOff(req *RequestObject, sess *Session) *ResponseObject {
	roomId, ok := bodyString(req.Body, "roomId")
	if !ok {
		return ErrMalformedReply(req, "missing 'roomId'")
	}

	if err := globals.registry.Unsubscribe(sess, roomId); err != nil {
		return ErrNotFoundReply(req, "room '"+roomId+"' not found")
	}
	resp := OkReply(req, map[string]any{"roomId": roomId})
	resp.Room = roomId
	return resp
}

func subscribeCount(req *RequestObject, sess *Session) *ResponseObject {
	roomId, ok := bodyString(req.Body, "roomId")
	if !ok {
		return ErrMalformedReply(req, "missing 'roomId'")
	}

	count, err := globals.registry.CountSubscribers(roomId)
	if err != nil {
		return ErrNotFoundReply(req, "room '"+roomId+"' not found")
	}
	return OkReply(req, map[string]any{"roomId": roomId, "count": count})
}

func adminTruncateCollection(req *RequestObject, sess *Session) *ResponseObject {
	if err := store.Collections.Truncate(req.Index, req.Collection); err != nil {
		return decodeStoreError(err, req)
	}
	return OkReply(req, map[string]any{"acknowledged": true})
}

func adminDeleteCollection(req *RequestObject, sess *Session) *ResponseObject {
	if err := store.Collections.Delete(req.Index, req.Collection); err != nil {
		return decodeStoreError(err, req)
	}
	return OkReply(req, map[string]any{"acknowledged": true})
}

func authLogin(req *RequestObject, sess *Session) *ResponseObject {
	strategy, ok := bodyString(req.Body, "strategy")
	if !ok {
		strategy = "token"
	}

	handler := auth.GetAuthHandler(strategy)
	if handler == nil {
		return ErrMalformedReply(req, "unknown auth strategy '"+strategy+"'")
	}

	var secret []byte
	switch strategy {
	case "basic":
		username, uok := bodyString(req.Body, "username")
		password, pok := bodyString(req.Body, "password")
		if !uok || !pok {
			return ErrMalformedReply(req, "missing 'username' or 'password'")
		}
		secret = []byte(username + ":" + password)
	default:
		token, tok := bodyString(req.Body, "jwt")
		if !tok {
			return ErrMalformedReply(req, "missing 'jwt'")
		}
		secret = []byte(token)
	}

	userId, err := handler.Authenticate(secret)
	if err != nil {
		logs.Info.Println("auth: login failed for session", sess.sid, ":", err)
		return ErrPermissionDeniedReply(req)
	}

	user, err := globals.security.LoadUser(userId)
	if err != nil {
		logs.Err.Println("auth: cannot resolve user '"+userId+"':", err)
		return ErrUnknownReply(req, "")
	}
	sess.user.Store(user)
	statsInc("LoginsTotal", 1)

	result := map[string]any{"_id": userId}
	if tok := auth.GetAuthHandler("token"); tok != nil {
		if jwt, err := tok.GenSecret(userId); err == nil {
			result["jwt"] = jwt
		}
	}
	return OkReply(req, result)
}

func authLogout(req *RequestObject, sess *Session) *ResponseObject {
	sess.user.Store(nil)
	return OkReply(req, map[string]any{"acknowledged": true})
}
