package core

import "sync"

// Stream is a synchronous multi-subscriber broadcast of typed events.
// Unlike a channel, every listener receives every event, in the order
// Emit was called, on the goroutine that called Emit.
//
// Example:
//
//	added := core.NewStream[string]()
//	unsub := added.Listen(func(name string) {
//	    fmt.Println("added", name)
//	})
//	defer unsub()
//	added.Emit("alice")
type Stream[T any] struct {
	mu        sync.Mutex
	listeners []listenerEntry[T]
	nextID    int
}

// NewStream creates a Stream with no listeners.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Listen subscribes handler and returns an unsubscribe function.
// Calling the unsubscribe function more than once is harmless.
func (s *Stream[T]) Listen(handler func(T)) (unsubscribe func()) {
	if handler == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry[T]{id: id, fn: handler})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.listeners = removeListener(s.listeners, id)
		s.mu.Unlock()
	}
}

// Emit delivers value to every current listener.
// Listeners added or removed during delivery take effect on the next Emit.
func (s *Stream[T]) Emit(value T) {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
}

// HasListeners reports whether at least one listener is subscribed.
func (s *Stream[T]) HasListeners() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners) > 0
}

// ListenerCount returns the number of subscribed listeners.
func (s *Stream[T]) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
