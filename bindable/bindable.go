package bindable

// Bindable is an observable value. The zero value is usable and holds the
// zero value of T as both its value and its default.
type Bindable[T comparable] struct {
	value T
	def   T

	// Disabled makes Set a no-op. Readers and subscribers are unaffected.
	Disabled bool

	changed observers[func(old, new T)]
}

// New creates a Bindable whose value and default are def.
func New[T comparable](def T) *Bindable[T] {
	return &Bindable[T]{value: def, def: def}
}

// Value returns the current value.
func (b *Bindable[T]) Value() T {
	return b.value
}

// Set assigns v and notifies subscribers with the old and new values.
// Assigning the current value does not notify.
func (b *Bindable[T]) Set(v T) {
	if b.Disabled || v == b.value {
		return
	}
	old := b.value
	b.value = v
	for _, e := range b.changed.entries {
		e.fn(old, v)
	}
}

// Default returns the value restored by SetDefault.
func (b *Bindable[T]) Default() T {
	return b.def
}

// SetDefault restores the default value, notifying subscribers if it differs.
func (b *Bindable[T]) SetDefault() {
	b.Set(b.def)
}

// IsDefault reports whether the current value equals the default.
func (b *Bindable[T]) IsDefault() bool {
	return b.value == b.def
}

// Subscribe registers fn to be called after every value change.
func (b *Bindable[T]) Subscribe(fn func(old, new T)) *Subscription {
	return b.changed.add(fn)
}

// SubscribeAndRun registers fn and immediately calls it once with the
// current value as both old and new.
func (b *Bindable[T]) SubscribeAndRun(fn func(old, new T)) *Subscription {
	sub := b.changed.add(fn)
	fn(b.value, b.value)
	return sub
}

// Subscribers returns the number of attached listeners.
func (b *Bindable[T]) Subscribers() int {
	return len(b.changed.entries)
}

// UnbindAll detaches every listener. Outstanding Subscription tokens become
// no-ops.
func (b *Bindable[T]) UnbindAll() {
	b.changed.clear()
}
