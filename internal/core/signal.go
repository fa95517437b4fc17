package core

// Connection identifies a listener registered on a Signal.
// The zero value is never returned by Connect.
type Connection uint64

// Signal is an observer registry owned by the component that emits it.
// Listeners are called synchronously in registration order.
// The zero value is ready to use.
type Signal[T any] struct {
	next      Connection
	listeners []signalListener[T]
}

type signalListener[T any] struct {
	id Connection
	fn func(T)
}

// Connect registers fn and returns a handle for Disconnect.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	s.next++
	s.listeners = append(s.listeners, signalListener[T]{id: s.next, fn: fn})
	return s.next
}

// Disconnect removes the listener. Reports whether it was registered.
func (s *Signal[T]) Disconnect(c Connection) bool {
	for i, l := range s.listeners {
		if l.id == c {
			// Copy so an Emit already iterating the old slice is unaffected.
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// DisconnectAll drops every listener.
func (s *Signal[T]) DisconnectAll() {
	s.listeners = nil
}

// Len returns the number of connected listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Emit calls every listener connected at the time of the call.
// Emitting with no listeners is a no-op.
func (s *Signal[T]) Emit(v T) {
	if s == nil {
		return
	}
	for _, l := range s.listeners {
		l.fn(v)
	}
}
