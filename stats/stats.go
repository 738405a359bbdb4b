// Package stats holds process-scoped runtime statistics.
//
// A Registry is created once per application session and handed to the
// components that report into it, either as a constructor argument or
// through a context.Context via NewContext. There is no package-level
// registry.
package stats

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Stat is a single named value. Writes come from the update thread; reads
// may come from any goroutine (the metric exporter reads on its own).
type Stat struct {
	Group string
	Name  string
	bits  atomic.Uint64
}

// Value returns the current value.
func (s *Stat) Value() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Set replaces the value.
func (s *Stat) Set(v float64) {
	s.bits.Store(math.Float64bits(v))
}

// Add increments the value by delta.
func (s *Stat) Add(delta float64) {
	for {
		old := s.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if s.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Entry is a point-in-time copy of a Stat.
type Entry struct {
	Group string
	Name  string
	Value float64
}

type statKey struct {
	group, name string
}

// Registry owns a set of statistics keyed by group and name.
type Registry struct {
	mu    sync.Mutex
	stats map[statKey]*Stat
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stats: make(map[statKey]*Stat)}
}

// Get returns the stat for group/name, creating it at zero on first use.
func (r *Registry) Get(group, name string) *Stat {
	k := statKey{group, name}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[k]
	if !ok {
		s = &Stat{Group: group, Name: name}
		r.stats[k] = s
	}
	return s
}

// Snapshot copies every stat, sorted by group then name.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	out := make([]Entry, 0, len(r.stats))
	for _, s := range r.stats {
		out = append(out, Entry{Group: s.Group, Name: s.Name, Value: s.Value()})
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of registered stats.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stats)
}

// Reset zeroes every stat but keeps them registered.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stats {
		s.Set(0)
	}
}

// Clear removes every stat. Pointers previously returned by Get keep
// working but are no longer reported.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = make(map[statKey]*Stat)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying r.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the registry carried by ctx, or nil.
func FromContext(ctx context.Context) *Registry {
	r, _ := ctx.Value(contextKey{}).(*Registry)
	return r
}
