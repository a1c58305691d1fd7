package core

import "sync"

// Listenable is anything that can be listened to for change notifications.
// AddListener returns a function that removes the listener.
type Listenable interface {
	AddListener(listener func()) func()
}

// Disposable is implemented by objects that hold subscriptions or other
// resources that must be released explicitly.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a plain function to Disposable.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Notifier broadcasts value-less notifications to its listeners.
// Listeners run synchronously in registration order.
// Notifier is safe for concurrent use.
type Notifier struct {
	mu        sync.Mutex
	listeners []listenerEntry[struct{}]
	nextID    int
}

type listenerEntry[T any] struct {
	id int
	fn func(T)
}

// NewNotifier creates a Notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers fn and returns an unsubscribe function.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listenerEntry[struct{}]{id: id, fn: func(struct{}) { fn() }})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		n.listeners = removeListener(n.listeners, id)
		n.mu.Unlock()
	}
}

// Notify calls every registered listener.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]listenerEntry[struct{}], len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l.fn(struct{}{})
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

func removeListener[T any](listeners []listenerEntry[T], id int) []listenerEntry[T] {
	for i, l := range listeners {
		if l.id == id {
			// Copy so an in-flight snapshot taken by an emitter is not shifted.
			out := make([]listenerEntry[T], 0, len(listeners)-1)
			out = append(out, listeners[:i]...)
			return append(out, listeners[i+1:]...)
		}
	}
	return listeners
}
