// Package dispatch schedules deferred work for bridges: the UI-thread hook
// that deferred callbacks are posted through, and the Scheduler used for
// debounced event dispatch and delayed attachment.
package dispatch

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())

	queueMu sync.Mutex
	queue   []func()
)

// RegisterDispatch sets the function used to run deferred callbacks on the
// UI thread. Hosts with an event loop should call this once during startup.
// Pass nil to queue deferred callbacks until Drain is called.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch runs callback through the registered dispatch function.
// Returns false if no dispatch function is registered or the callback is nil,
// in which case the callback has not been run.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Run posts callback to the UI thread. With a registered dispatch function
// it is handed over directly; otherwise it waits in a queue until the loop
// that owns the bridges calls Drain. Callbacks never run on the caller's
// goroutine, which for deferred work is a timer goroutine.
func Run(callback func()) {
	if callback == nil {
		return
	}
	if Dispatch(callback) {
		return
	}
	queueMu.Lock()
	queue = append(queue, callback)
	queueMu.Unlock()
}

// Drain runs queued callbacks on the calling goroutine, in the order they
// were queued, and returns how many ran. Callbacks queued while draining run
// in the same call.
func Drain() int {
	n := 0
	for {
		queueMu.Lock()
		batch := queue
		queue = nil
		queueMu.Unlock()
		if len(batch) == 0 {
			return n
		}
		for _, cb := range batch {
			cb()
		}
		n += len(batch)
	}
}

// Queued reports how many callbacks are waiting for Drain.
func Queued() int {
	queueMu.Lock()
	defer queueMu.Unlock()
	return len(queue)
}
