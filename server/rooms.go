/******************************************************************************
 *
 *  Description :
 *
 *    Room registry. A room is the set of sessions subscribed to one filter
 *    on one collection. The registry keeps two secondary indexes: rooms by
 *    collection for notification fan-out, and rooms by session for cleanup
 *    when a connection drops.
 *
 *****************************************************************************/

package main

import (
	"sort"
	"sync"

	"github.com/gs7776/kuzzle/server/logs"
	t "github.com/gs7776/kuzzle/server/store/types"
)

// Room is a single subscription room.
type Room struct {
	id         string
	index      string
	collection string
	filter     Filter

	// Subscribed sessions keyed by session ID.
	sessions map[string]*Session
}

// RoomRegistry tracks live rooms and their subscribers. All maps are guarded
// by a single lock: subscriptions mutate rarely compared to notifications,
// which take only the read lock.
type RoomRegistry struct {
	lock sync.RWMutex

	// All live rooms by room ID.
	rooms map[string]*Room
	// Rooms grouped by "index/collection", for notification fan-out.
	byCollection map[string]map[string]*Room
	// Rooms each session is subscribed to, for cleanup on disconnect.
	bySession map[string]map[string]*Room
}

// NewRoomRegistry creates an empty room registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:        make(map[string]*Room),
		byCollection: make(map[string]map[string]*Room),
		bySession:    make(map[string]map[string]*Room),
	}
}

func collKey(index, collection string) string {
	return index + "/" + collection
}

// Subscribe adds the session to the room for the given filter, creating the
// room on first use. Subscribing twice to the same room is idempotent.
// Returns the room ID and the subscriber count after the call.
func (rr *RoomRegistry) Subscribe(sess *Session, index, collection string, filter Filter) (string, int) {
	roomId := filter.RoomId(index, collection)

	rr.lock.Lock()
	defer rr.lock.Unlock()

	room := rr.rooms[roomId]
	if room == nil {
		room = &Room{
			id:         roomId,
			index:      index,
			collection: collection,
			filter:     filter,
			sessions:   make(map[string]*Session),
		}
		rr.rooms[roomId] = room

		key := collKey(index, collection)
		if rr.byCollection[key] == nil {
			rr.byCollection[key] = make(map[string]*Room)
		}
		rr.byCollection[key][roomId] = room

		statsInc("LiveRooms", 1)
		statsInc("TotalRooms", 1)
	}

	if _, already := room.sessions[sess.sid]; !already {
		room.sessions[sess.sid] = sess
		if rr.bySession[sess.sid] == nil {
			rr.bySession[sess.sid] = make(map[string]*Room)
		}
		rr.bySession[sess.sid][roomId] = room
		statsInc("LiveSubscriptions", 1)
	}

	return roomId, len(room.sessions)
}

// Unsubscribe removes the session from the room. The room is destroyed when
// its last subscriber leaves. Returns types.ErrNotFound if the room does not
// exist or the session is not subscribed to it.
func (rr *RoomRegistry) Unsubscribe(sess *Session, roomId string) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	room := rr.rooms[roomId]
	if room == nil {
		return t.ErrNotFound
	}
	if _, subscribed := room.sessions[sess.sid]; !subscribed {
		return t.ErrNotFound
	}

	rr.removeLocked(room, sess.sid)
	return nil
}

// UnsubscribeAll drops every subscription held by the session. Called when
// the connection closes. Safe to call for sessions with no subscriptions.
func (rr *RoomRegistry) UnsubscribeAll(sess *Session) {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	for _, room := range rr.bySession[sess.sid] {
		rr.removeLocked(room, sess.sid)
	}
}

// removeLocked detaches one session from one room and garbage-collects empty
// rooms and indexes. Caller must hold the write lock.
func (rr *RoomRegistry) removeLocked(room *Room, sid string) {
	delete(room.sessions, sid)
	delete(rr.bySession[sid], room.id)
	if len(rr.bySession[sid]) == 0 {
		delete(rr.bySession, sid)
	}
	statsInc("LiveSubscriptions", -1)

	if len(room.sessions) == 0 {
		delete(rr.rooms, room.id)
		key := collKey(room.index, room.collection)
		delete(rr.byCollection[key], room.id)
		if len(rr.byCollection[key]) == 0 {
			delete(rr.byCollection, key)
		}
		statsInc("LiveRooms", -1)
	}
}

// CountSubscribers returns the number of sessions subscribed to a room.
// Returns types.ErrNotFound for an unknown room.
func (rr *RoomRegistry) CountSubscribers(roomId string) (int, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	room := rr.rooms[roomId]
	if room == nil {
		return 0, t.ErrNotFound
	}
	return len(room.sessions), nil
}

// RealtimeCollections returns the sorted names of collections in the index
// which exist only as subscription targets.
func (rr *RoomRegistry) RealtimeCollections(index string) []string {
	rr.lock.RLock()
	names := make(map[string]bool)
	for _, rooms := range rr.byCollection {
		for _, room := range rooms {
			if room.index == index {
				names[room.collection] = true
				break
			}
		}
	}
	rr.lock.RUnlock()

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Notify delivers a change notification to every room on the collection
// whose filter matches the content. Matching rooms are snapshotted under the
// read lock, delivery happens outside it through the sessions' non-blocking
// send queues. Returns the number of sessions the notification was queued to.
func (rr *RoomRegistry) Notify(index, collection, action string, content map[string]any) int {
	type delivery struct {
		room     *Room
		sessions []*Session
	}

	rr.lock.RLock()
	var matched []delivery
	for _, room := range rr.byCollection[collKey(index, collection)] {
		if !room.filter.Match(content) {
			continue
		}
		d := delivery{room: room, sessions: make([]*Session, 0, len(room.sessions))}
		for _, sess := range room.sessions {
			d.sessions = append(d.sessions, sess)
		}
		matched = append(matched, d)
	}
	rr.lock.RUnlock()

	var count int
	for _, d := range matched {
		note := &NotificationObject{
			Room:       d.room.id,
			Index:      index,
			Collection: collection,
			Action:     action,
			Content:    content,
		}
		for _, sess := range d.sessions {
			if !sess.queueOut(note) {
				logs.Warn.Println("rooms: dropped notification for session", sess.sid)
				continue
			}
			count++
		}
	}
	if count > 0 {
		statsInc("NotificationsDeliveredTotal", count)
	}
	return count
}
