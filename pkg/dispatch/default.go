package dispatch

import (
	"sync"
	"sync/atomic"
)

var (
	defaultMu         sync.Mutex
	defaultDispatcher atomic.Pointer[Dispatcher]
)

// Default returns the process-wide Dispatcher. If Initialize has not been
// called yet, an empty one (no handling configured) is built exactly once.
func Default() *Dispatcher {
	if d := defaultDispatcher.Load(); d != nil {
		return d
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if d := defaultDispatcher.Load(); d != nil {
		return d
	}
	d := New(nil)
	defaultDispatcher.Store(d)
	return d
}

// Initialize replaces the process-wide Dispatcher with one built from cfg and
// returns it. Dispatches already running on the previous instance finish
// against it.
func Initialize(cfg *Configuration, opts ...Option) *Dispatcher {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	d := New(cfg, opts...)
	defaultDispatcher.Store(d)
	return d
}

// Dispatch sends err to the process-wide Dispatcher.
func Dispatch(err error) {
	Default().Dispatch(err)
}
