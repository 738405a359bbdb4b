package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phanxgames/cadence/bindable"
	"github.com/phanxgames/cadence/stats"
)

const statsGroup = "audio"

// Manager owns every active channel and advances them once per frame.
// It is not safe for concurrent use; call it from the update thread.
type Manager struct {
	// Volume scales every channel.
	Volume *bindable.Bindable[float64]
	// TrackVolume scales channels created by tracks.
	TrackVolume *bindable.Bindable[float64]
	// SampleVolume scales channels created by samples.
	SampleVolume *bindable.Bindable[float64]

	backend  Backend
	channels []*Channel
	logger   zerolog.Logger
	sink     EventSink
	disposed bool

	statChannels *stats.Stat
	statRunning  *stats.Stat
	statRemoved  *stats.Stat
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithStats reports channel counts into r under the "audio" group.
func WithStats(r *stats.Registry) Option {
	return func(m *Manager) {
		if r == nil {
			return
		}
		m.statChannels = r.Get(statsGroup, "channels")
		m.statRunning = r.Get(statsGroup, "running")
		m.statRemoved = r.Get(statsGroup, "removed")
	}
}

// WithEventSink forwards channel lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(m *Manager) { m.sink = sink }
}

// NewManager creates a manager that loads media through backend.
func NewManager(backend Backend, opts ...Option) *Manager {
	m := &Manager{
		Volume:       bindable.New(1.0),
		TrackVolume:  bindable.New(1.0),
		SampleVolume: bindable.New(1.0),
		backend:      backend,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetEventSink replaces the event sink. nil disables forwarding.
func (m *Manager) SetEventSink(sink EventSink) {
	m.sink = sink
}

// Channels returns the active channel set in insertion order. The returned
// slice MUST NOT be mutated.
func (m *Manager) Channels() []*Channel {
	return m.channels
}

// ActiveCount returns the number of channels currently running.
func (m *Manager) ActiveCount() int {
	n := 0
	for _, c := range m.channels {
		if c.IsRunning.Value() {
			n++
		}
	}
	return n
}

// IsDisposed reports whether Dispose has been called.
func (m *Manager) IsDisposed() bool {
	return m.disposed
}

// AddChannel registers c with the manager. group selects the volume group
// the channel follows (TrackVolume, SampleVolume, or nil for master only).
// Channels added after Dispose are disposed immediately.
func (m *Manager) AddChannel(c *Channel, group *bindable.Bindable[float64]) {
	if m.disposed {
		c.Dispose()
		return
	}
	c.attachVolumes(group, m.Volume)
	c.Started.Subscribe(func(c *Channel) { m.emit(ChannelStarted, c) })
	c.Stopped.Subscribe(func(c *Channel) { m.emit(ChannelStopped, c) })
	c.Ended.Subscribe(func(c *Channel) { m.emit(ChannelEnded, c) })
	m.channels = append(m.channels, c)
	m.logger.Debug().Str("channel", c.Name).Float64("length", c.Length()).Msg("channel added")
}

// Update advances every channel by elapsed milliseconds. Channels are
// visited from last to first so removal during the pass is safe. Channels
// that were disposed, or that ended on a previous pass and were not
// restarted, are removed instead of advanced.
func (m *Manager) Update(elapsed float64) {
	for i := len(m.channels) - 1; i >= 0; i-- {
		// Channel listeners run synchronously and may dispose the manager
		// or shrink the set.
		if m.disposed {
			return
		}
		if i >= len(m.channels) {
			continue
		}
		c := m.channels[i]
		if c.disposed || (c.ended && !c.IsRunning.Value()) {
			m.removeAt(i)
			continue
		}
		c.Update(elapsed)
	}

	if m.statChannels != nil {
		m.statChannels.Set(float64(len(m.channels)))
		m.statRunning.Set(float64(m.ActiveCount()))
	}
}

func (m *Manager) removeAt(i int) {
	c := m.channels[i]
	copy(m.channels[i:], m.channels[i+1:])
	m.channels[len(m.channels)-1] = nil
	m.channels = m.channels[:len(m.channels)-1]

	m.emit(ChannelRemoved, c)
	m.logger.Debug().Str("channel", c.Name).Bool("ended", c.ended).Msg("channel removed")
	if m.statRemoved != nil {
		m.statRemoved.Add(1)
	}
	c.Dispose()
}

func (m *Manager) emit(t ChannelEventType, c *Channel) {
	if m.sink == nil {
		return
	}
	m.sink.EmitChannelEvent(ChannelEvent{Type: t, Name: c.Name, Time: c.CurrentTime(), Channel: c})
}

// --- Factories ---

// NewTrack decodes r as a music track.
func (m *Manager) NewTrack(name string, r io.Reader) (*Track, error) {
	src, err := m.backend.LoadTrack(name, r)
	if err != nil {
		m.logger.Error().Err(err).Str("track", name).Msg("load track failed")
		return nil, fmt.Errorf("audio: load track %s: %w", name, err)
	}
	return &Track{Name: name, source: src, manager: m}, nil
}

// NewTrackFromFile opens and decodes the file at path as a track.
func (m *Manager) NewTrackFromFile(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open track: %w", err)
	}
	return m.NewTrack(filepath.Base(path), bytes.NewReader(data))
}

// NewSample decodes r as a short sound effect.
func (m *Manager) NewSample(name string, r io.Reader) (*Sample, error) {
	src, err := m.backend.LoadSample(name, r)
	if err != nil {
		m.logger.Error().Err(err).Str("sample", name).Msg("load sample failed")
		return nil, fmt.Errorf("audio: load sample %s: %w", name, err)
	}
	return &Sample{Name: name, source: src, manager: m}, nil
}

// NewSampleFromFile opens and decodes the file at path as a sample.
func (m *Manager) NewSampleFromFile(path string) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open sample: %w", err)
	}
	return m.NewSample(filepath.Base(path), bytes.NewReader(data))
}

// play builds, registers and starts a channel for src.
func (m *Manager) play(name string, src Source, group *bindable.Bindable[float64], setup func(*Channel)) *Channel {
	voice, err := src.NewVoice()
	if err != nil {
		m.logger.Error().Err(err).Str("channel", name).Msg("create voice failed, playing silently")
		voice = nil
	}
	c := NewChannel(name, src.Length(), voice)
	if setup != nil {
		setup(c)
	}
	m.AddChannel(c, group)
	c.Play()
	return c
}

// Dispose stops every channel, reports it removed, disposes it, clears the
// active set and closes the backend.
func (m *Manager) Dispose() error {
	if m.disposed {
		return nil
	}
	m.disposed = true
	channels := m.channels
	m.channels = nil
	for _, c := range channels {
		c.Stop()
		m.emit(ChannelRemoved, c)
		c.Dispose()
	}
	clear(channels)
	m.Volume.UnbindAll()
	m.TrackVolume.UnbindAll()
	m.SampleVolume.UnbindAll()
	if m.backend == nil {
		return nil
	}
	if err := m.backend.Close(); err != nil {
		return fmt.Errorf("audio: close backend: %w", err)
	}
	return nil
}
