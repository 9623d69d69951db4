/******************************************************************************
 *
 *  Description :
 *
 *    Request funnel. Every client request passes through the same pipeline:
 *    shape validation, authorization, "before" lifecycle event, dispatch to
 *    the controller action, "after" lifecycle event, response.
 *
 *****************************************************************************/

package main

import (
	"errors"
	"net/http"

	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/security"
	t "github.com/gs7776/kuzzle/server/store/types"
)

// handlerFunc executes one controller action.
type handlerFunc func(req *RequestObject, sess *Session) *ResponseObject

// Funnel routes requests to controller actions after running the shared
// pipeline. The route table is built once at startup and read-only
// afterwards.
type Funnel struct {
	routes map[string]map[string]handlerFunc
	hooks  *HookBus
}

// NewFunnel builds the funnel with the standard controllers registered.
func NewFunnel(hooks *HookBus) *Funnel {
	f := &Funnel{
		routes: make(map[string]map[string]handlerFunc),
		hooks:  hooks,
	}

	f.addRoute("read", "search", readSearch)
	f.addRoute("read", "get", readGet)
	f.addRoute("read", "count", readCount)
	f.addRoute("read", "listCollections", readListCollections)
	f.addRoute("read", "now", readNow)

	f.addRoute("write", "create", writeCreate)
	f.addRoute("write", "createOrReplace", writeCreateOrReplace)
	f.addRoute("write", "update", writeUpdate)
	f.addRoute("write", "delete", writeDelete)

	f.addRoute("subscribe", "on", subscribeOn)
	f.addRoute("subscribe", "off", subscribeOff)
	f.addRoute("subscribe", "count", subscribeCount)

	f.addRoute("admin", "truncateCollection", adminTruncateCollection)
	f.addRoute("admin", "deleteCollection", adminDeleteCollection)

	f.addRoute("auth", "login", authLogin)
	f.addRoute("auth", "logout", authLogout)

	return f
}

func (f *Funnel) addRoute(controller, action string, fn handlerFunc) {
	if f.routes[controller] == nil {
		f.routes[controller] = make(map[string]handlerFunc)
	}
	f.routes[controller][action] = fn
}

// Execute runs one request through the pipeline and returns the response.
// Never returns nil.
func (f *Funnel) Execute(req *RequestObject, sess *Session) *ResponseObject {
	statsInc("RequestsReceivedTotal", 1)

	// 1. Shape validation.
	actions, ok := f.routes[req.Controller]
	if !ok {
		statsInc("RequestsRejectedTotal", 1)
		return ErrMalformedReply(req, "unknown controller '"+req.Controller+"'")
	}
	handler, ok := actions[req.Action]
	if !ok {
		statsInc("RequestsRejectedTotal", 1)
		return ErrMalformedReply(req, "unknown action '"+req.Controller+":"+req.Action+"'")
	}

	// 2. Authorization.
	user := sess.currentUser()
	ctx := security.Context{ConnId: sess.sid, Origin: req.origin}
	if user == nil || !user.IsActionAllowed(req.Index, req.Collection, req.Controller, req.Action, &ctx) {
		statsInc("RequestsForbiddenTotal", 1)
		return ErrPermissionDeniedReply(req)
	}

	// 3. Before event. An aborting hook stops the request before any side
	// effect of the dispatch is visible. An abort carrying a storage error
	// answers with that error's classification, anything else is a plain
	// rejection.
	event := req.Controller + ":" + req.Action
	if err := f.hooks.EmitBefore(event, req); err != nil {
		logs.Info.Println("funnel: request", req.Id, "aborted:", err)
		statsInc("RequestsRejectedTotal", 1)
		var resp *ResponseObject
		var serr t.StoreError
		if errors.As(err, &serr) {
			resp = decodeStoreError(serr, req)
		} else {
			resp = reply(req, http.StatusForbidden, nil, err.Error())
		}
		f.hooks.EmitAfter(event, req, resp)
		return resp
	}

	// 4. Dispatch.
	resp := handler(req, sess)

	// 5. After event fires on success and failure alike, before the caller
	// observes the result.
	f.hooks.EmitAfter(event, req, resp)

	if resp.Status < http.StatusBadRequest {
		statsInc("RequestsCompletedTotal", 1)
	} else {
		statsInc("RequestsFailedTotal", 1)
	}
	return resp
}

// decodeStoreError translates a storage failure into a classified response.
func decodeStoreError(err error, req *RequestObject) *ResponseObject {
	if err == nil {
		return OkReply(req, nil)
	}

	var serr t.StoreError
	if e, ok := err.(t.StoreError); ok {
		serr = e
	}

	switch serr {
	case t.ErrNotFound:
		return ErrNotFoundReply(req, "")
	case t.ErrAlreadyExists:
		return ErrPreconditionFailedReply(req, "document already exists")
	case t.ErrMalformed:
		return ErrMalformedReply(req, "")
	case t.ErrPermissionDenied:
		return ErrPermissionDeniedReply(req)
	default:
		logs.Err.Println("store error:", err, "in request", req.Id)
		return ErrUnknownReply(req, "")
	}
}
