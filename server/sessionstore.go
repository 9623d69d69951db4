/******************************************************************************
 *
 *  Description :
 *
 *    Management of live sessions: a map of all connected sessions indexed
 *    by session ID.
 *
 *****************************************************************************/

package main

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/store"
)

// SessionStore holds live sessions indexed by session ID.
type SessionStore struct {
	lock sync.Mutex

	// All sessions indexed by session ID.
	sessCache map[string]*Session
}

// NewSession creates a new session and saves it to the session store.
func (ss *SessionStore) NewSession(conn any, sid string) (*Session, int) {
	var s Session

	s.sid = sid

	switch c := conn.(type) {
	case *websocket.Conn:
		s.proto = WEBSOCK
		s.ws = c
	case nil:
		s.proto = LOCAL
	default:
		s.proto = NONE
	}

	if s.proto != NONE {
		s.send = make(chan any, 256) // buffered
		s.stop = make(chan any, 1)   // buffered by 1 just to make it non-blocking
	}

	s.lastAction = time.Now().UnixNano()
	if s.sid == "" {
		s.sid = store.Store.GetUidString()
	}

	ss.lock.Lock()
	ss.sessCache[s.sid] = &s
	count := len(ss.sessCache)
	ss.lock.Unlock()

	statsSet("LiveSessions", int64(count))
	statsInc("TotalSessions", 1)

	return &s, count
}

// Get fetches a session from the store by session ID.
func (ss *SessionStore) Get(sid string) *Session {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.sessCache[sid]
}

// Delete removes the session from the store and returns the number of
// sessions left.
func (ss *SessionStore) Delete(s *Session) int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	delete(ss.sessCache, s.sid)
	return len(ss.sessCache)
}

// Shutdown terminates sessionStore. No need to clean up.
func (ss *SessionStore) Shutdown() {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	shutdown := (&ResponseObject{Status: 200, Error: "server shutting down"}).serialize()
	for _, s := range ss.sessCache {
		if s.stop != nil {
			s.stop <- shutdown
		}
	}

	logs.Info.Printf("SessionStore shut down, sessions terminated: %d", len(ss.sessCache))
}

// NewSessionStore initializes a session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessCache: make(map[string]*Session),
	}
}
