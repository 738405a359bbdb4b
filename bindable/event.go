package bindable

// Event is a typed observer list with no stored value.
type Event[T any] struct {
	listeners observers[func(T)]
}

// Subscribe registers fn to be called on every Emit.
func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	return e.listeners.add(fn)
}

// Emit calls every listener with v, in subscription order.
func (e *Event[T]) Emit(v T) {
	for _, l := range e.listeners.entries {
		l.fn(v)
	}
}

// Len returns the number of attached listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners.entries)
}

// UnbindAll detaches every listener.
func (e *Event[T]) UnbindAll() {
	e.listeners.clear()
}
