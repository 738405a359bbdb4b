package bindable

// Subscription detaches one listener from a Bindable or Event.
type Subscription struct {
	detach func()
}

// Unsubscribe removes the listener. Safe to call more than once and safe to
// call from inside the listener itself.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.detach == nil {
		return
	}
	s.detach()
	s.detach = nil
}

type observer[F any] struct {
	id uint64
	fn F
}

// observers is an ordered listener list. Removal always copies into a fresh
// backing array so an emission loop holding the old slice is unaffected.
type observers[F any] struct {
	nextID  uint64
	entries []observer[F]
}

func (o *observers[F]) add(fn F) *Subscription {
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observer[F]{id: id, fn: fn})
	return &Subscription{detach: func() { o.remove(id) }}
}

func (o *observers[F]) remove(id uint64) {
	for i, e := range o.entries {
		if e.id == id {
			o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
			return
		}
	}
}

func (o *observers[F]) clear() {
	o.entries = nil
}
