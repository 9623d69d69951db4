/******************************************************************************
 *
 *  Description :
 *
 *    Handling of a single client connection. A session is the gateway-side
 *    state of one connection: its transport, outbound queue, authenticated
 *    user, and subscriptions. Does not know anything about the underlying
 *    transport except how it is closed.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/security"
)

// Wire transport
const (
	// NONE is undefined/not set.
	NONE = iota
	// WEBSOCK represents websocket connections.
	WEBSOCK
	// LOCAL is an internal session without a network connection, used in tests.
	LOCAL
)

// Maximum number of queued messages before the session is considered stale
// and the message is dropped.
const sendQueueLimit = 128

func transportName(proto int) string {
	switch proto {
	case WEBSOCK:
		return "websocket"
	case LOCAL:
		return "local"
	}
	return "unknown"
}

// Session is a connection to the gateway.
type Session struct {
	// protocol - NONE (unset), WEBSOCK, LOCAL.
	proto int

	// Websocket connection. Set only for WEBSOCK sessions.
	ws *websocket.Conn

	// IP address of the client. For long polling this is the IP of the last
	// request.
	remoteAddr string

	// Session ID.
	sid string

	// Time when the session was last used.
	lastAction int64

	// Authenticated user bound to the session. Nil until a successful
	// auth:login; nil means the anonymous user. Read from the notification
	// path, hence atomic.
	user atomic.Pointer[security.User]

	// Outbound messages, buffered. The content must be serialized in the
	// format suitable for the session.
	send chan any

	// Channel for shutting down the session, buffer 1.
	// Content in the same format as for 'send'.
	stop chan any
}

// currentUser returns the authenticated user or the anonymous user if the
// session has not logged in.
func (s *Session) currentUser() *security.User {
	if u := s.user.Load(); u != nil {
		return u
	}
	return globals.anonUser
}

// queueOut attempts to send a message to the session write loop; if the send
// queue is full or the session is down, the message is dropped. The send is
// non-blocking so a stalled client never holds up a notification fan-out.
func (s *Session) queueOut(msg any) bool {
	if s == nil || s.send == nil {
		return false
	}

	if len(s.send) > sendQueueLimit {
		return false
	}

	var out []byte
	switch v := msg.(type) {
	case *ResponseObject:
		out = v.serialize()
	case []byte:
		out = v
	default:
		out, _ = json.Marshal(msg)
	}

	select {
	case s.send <- out:
	default:
		return false
	}
	return true
}

// dispatchRaw parses a raw byte payload into a request and dispatches it.
func (s *Session) dispatchRaw(raw []byte) {
	var req RequestObject
	if err := json.Unmarshal(raw, &req); err != nil {
		logs.Warn.Println("s.dispatch: unparseable message", s.sid, err)
		s.queueOut(ErrMalformedReply(nil, "invalid json"))
		return
	}

	s.dispatch(&req)
}

// dispatch feeds one request through the funnel and queues the response.
func (s *Session) dispatch(req *RequestObject) {
	s.lastAction = time.Now().UnixNano()
	req.origin = transportName(s.proto)

	resp := globals.funnel.Execute(req, s)
	if resp != nil {
		s.queueOut(resp)
	}
}

// cleanUp is called when the session is terminated to remove the session
// from the store and drop all its subscriptions.
func (s *Session) cleanUp() {
	globals.registry.UnsubscribeAll(s)
	count := globals.sessionStore.Delete(s)
	statsSet("LiveSessions", int64(count))
}
