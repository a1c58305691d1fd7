package platform

import "sync"

// Dispatcher hands a callback to the host's UI thread.
type Dispatcher func(callback func())

var (
	dispatchMu sync.RWMutex
	dispatcher Dispatcher
)

// RegisterDispatch installs the host adapter's dispatcher. UIScheduler and
// collections built with it deliver their streams through fn.
// Passing nil unregisters the current one.
func RegisterDispatch(fn Dispatcher) {
	dispatchMu.Lock()
	dispatcher = fn
	dispatchMu.Unlock()
}

// Dispatching reports whether a dispatcher is registered.
func Dispatching() bool {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	return dispatcher != nil
}

// Dispatch hands callback to the registered dispatcher. It returns false,
// without running callback, when none is registered or callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatcher
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// SetupTestDispatch installs a dispatcher that runs callbacks inline and
// registers its removal with cleanup (usually testing.T.Cleanup).
//
//	platform.SetupTestDispatch(t.Cleanup)
func SetupTestDispatch(cleanup func(func())) {
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(func() { RegisterDispatch(nil) })
}
