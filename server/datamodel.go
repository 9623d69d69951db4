/******************************************************************************
 *
 *  Description :
 *
 *    Wire protocol structures: the request envelope clients submit and the
 *    response envelope the gateway returns, plus canned reply constructors.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"net/http"
)

// RequestObject is a single client request as it travels through the funnel.
type RequestObject struct {
	// Client-assigned request ID, echoed back in the response.
	Id string `json:"requestId,omitempty"`
	// Controller to route to, e.g. "read".
	Controller string `json:"controller"`
	// Action within the controller, e.g. "search".
	Action string `json:"action"`
	// Data index (database) the request addresses.
	Index string `json:"index,omitempty"`
	// Collection within the index.
	Collection string `json:"collection,omitempty"`
	// Request payload. Content depends on controller and action.
	Body map[string]any `json:"body,omitempty"`

	// Transport the request arrived on, e.g. "websocket". Not a part of the
	// wire format, filled in by the session.
	origin string
}

// ResponseObject is the reply envelope for a single request.
type ResponseObject struct {
	// Request ID the response correlates to.
	Id string `json:"requestId,omitempty"`
	// HTTP-style status code: 200, 201, 400, 403, 404, 412, 500.
	Status int `json:"status"`
	// Controller and action echoed from the request.
	Controller string `json:"controller,omitempty"`
	Action     string `json:"action,omitempty"`
	Index      string `json:"index,omitempty"`
	Collection string `json:"collection,omitempty"`
	// Room ID for subscription responses and notifications.
	Room string `json:"roomId,omitempty"`
	// Result payload on success.
	Result any `json:"result,omitempty"`
	// Error message on failure.
	Error string `json:"error,omitempty"`
}

// NotificationObject is a realtime message pushed to room subscribers when a
// stored document changes or a realtime message is published.
type NotificationObject struct {
	Room       string `json:"roomId"`
	Index      string `json:"index"`
	Collection string `json:"collection"`
	// Action which triggered the notification: "create", "update", etc.
	Action  string         `json:"action"`
	Content map[string]any `json:"content"`
}

// reply fills in the envelope fields shared by all response constructors.
func reply(req *RequestObject, status int, result any, errmsg string) *ResponseObject {
	resp := &ResponseObject{Status: status, Result: result, Error: errmsg}
	if req != nil {
		resp.Id = req.Id
		resp.Controller = req.Controller
		resp.Action = req.Action
		resp.Index = req.Index
		resp.Collection = req.Collection
	}
	return resp
}

// OkReply constructs a 200 response with the given result.
func OkReply(req *RequestObject, result any) *ResponseObject {
	return reply(req, http.StatusOK, result, "")
}

// OkCreatedReply constructs a 201 response for newly created objects.
func OkCreatedReply(req *RequestObject, result any) *ResponseObject {
	return reply(req, http.StatusCreated, result, "")
}

// ErrMalformedReply constructs a 400 response: malformed request.
func ErrMalformedReply(req *RequestObject, errmsg string) *ResponseObject {
	if errmsg == "" {
		errmsg = "malformed request"
	}
	return reply(req, http.StatusBadRequest, nil, errmsg)
}

// ErrPermissionDeniedReply constructs a 403 response: the user is not allowed
// to perform the action.
func ErrPermissionDeniedReply(req *RequestObject) *ResponseObject {
	return reply(req, http.StatusForbidden, nil, "permission denied")
}

// ErrNotFoundReply constructs a 404 response: object not found.
func ErrNotFoundReply(req *RequestObject, errmsg string) *ResponseObject {
	if errmsg == "" {
		errmsg = "not found"
	}
	return reply(req, http.StatusNotFound, nil, errmsg)
}

// ErrPreconditionFailedReply constructs a 412 response: the request is valid
// but cannot be satisfied in the current state, e.g. a failed document
// validation or a document which already exists.
func ErrPreconditionFailedReply(req *RequestObject, errmsg string) *ResponseObject {
	if errmsg == "" {
		errmsg = "precondition failed"
	}
	return reply(req, http.StatusPreconditionFailed, nil, errmsg)
}

// ErrUnknownReply constructs a 500 response: database error or other failure
// the client can do nothing about.
func ErrUnknownReply(req *RequestObject, errmsg string) *ResponseObject {
	if errmsg == "" {
		errmsg = "internal error"
	}
	return reply(req, http.StatusInternalServerError, nil, errmsg)
}

func (resp *ResponseObject) serialize() []byte {
	out, _ := json.Marshal(resp)
	return out
}
