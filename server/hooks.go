/******************************************************************************
 *
 *  Description :
 *
 *    Lifecycle hooks. Listeners attach to named events fired by the request
 *    funnel before and after every action. A before listener may veto the
 *    request by returning an abort error; after listeners are notify-only.
 *
 *****************************************************************************/

package main

import (
	"errors"
	"sync"

	"github.com/gs7776/kuzzle/server/logs"
)

// HookFunc is a before-event listener. The argument is the live request:
// listeners may mutate it. Returning a non-nil error aborts the request if
// the error is wrapped with Abort, otherwise it is logged and ignored.
type HookFunc func(req *RequestObject) error

// AfterHookFunc is an after-event listener. It observes the response; its
// return value cannot change the outcome.
type AfterHookFunc func(req *RequestObject, resp *ResponseObject)

// errAborted marks a listener error as a hard stop for the request.
var errAborted = errors.New("aborted by hook")

// Abort wraps a listener error so the funnel rejects the request instead of
// just logging the failure.
func Abort(err error) error {
	if err == nil {
		return errAborted
	}
	return errors.Join(errAborted, err)
}

// HookBus routes lifecycle events to registered listeners. Events are named
// "controller:action"; the wildcard "*" receives every event.
type HookBus struct {
	lock   sync.RWMutex
	before map[string][]HookFunc
	after  map[string][]AfterHookFunc
}

// NewHookBus creates an empty hook bus.
func NewHookBus() *HookBus {
	return &HookBus{
		before: make(map[string][]HookFunc),
		after:  make(map[string][]AfterHookFunc),
	}
}

// OnBefore registers a listener invoked before the named event is executed.
func (hb *HookBus) OnBefore(event string, fn HookFunc) {
	hb.lock.Lock()
	hb.before[event] = append(hb.before[event], fn)
	hb.lock.Unlock()
}

// OnAfter registers a listener invoked after the named event has executed.
func (hb *HookBus) OnAfter(event string, fn AfterHookFunc) {
	hb.lock.Lock()
	hb.after[event] = append(hb.after[event], fn)
	hb.lock.Unlock()
}

// EmitBefore fires the before listeners for the event. Listeners run in
// registration order, wildcard listeners first. The first abort error stops
// the run and is returned to the caller; other errors and panics are logged
// and do not affect the request.
func (hb *HookBus) EmitBefore(event string, req *RequestObject) error {
	hb.lock.RLock()
	listeners := append(append([]HookFunc{}, hb.before["*"]...), hb.before[event]...)
	hb.lock.RUnlock()

	for _, fn := range listeners {
		if err := hb.callBefore(event, fn, req); err != nil {
			return err
		}
	}
	return nil
}

// EmitAfter fires the after listeners for the event. Panics in listeners are
// contained so one broken plugin cannot take out the funnel.
func (hb *HookBus) EmitAfter(event string, req *RequestObject, resp *ResponseObject) {
	hb.lock.RLock()
	listeners := append(append([]AfterHookFunc{}, hb.after["*"]...), hb.after[event]...)
	hb.lock.RUnlock()

	for _, fn := range listeners {
		hb.callAfter(event, fn, req, resp)
	}
}

func (hb *HookBus) callBefore(event string, fn HookFunc, req *RequestObject) (aborted error) {
	defer func() {
		if r := recover(); r != nil {
			logs.Err.Println("hooks: panic in before listener for", event, ":", r)
		}
	}()

	if err := fn(req); err != nil {
		if errors.Is(err, errAborted) {
			return err
		}
		logs.Warn.Println("hooks: before listener for", event, "failed:", err)
	}
	return nil
}

func (hb *HookBus) callAfter(event string, fn AfterHookFunc, req *RequestObject, resp *ResponseObject) {
	defer func() {
		if r := recover(); r != nil {
			logs.Err.Println("hooks: panic in after listener for", event, ":", r)
		}
	}()

	fn(req, resp)
}
