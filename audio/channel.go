package audio

import (
	"math"

	"github.com/phanxgames/cadence/bindable"
)

// Channel is one playback instance of a track or sample. Times are in
// milliseconds. There is no stored paused state: a paused channel is a
// stopped one that kept its position.
type Channel struct {
	Name string

	// IsRunning drives the Started and Stopped events. Prefer Play, Stop
	// and Pause over setting it directly.
	IsRunning *bindable.Bindable[bool]

	// Volume is multiplied by the manager's group and master volumes.
	Volume *bindable.Bindable[float64]
	// Frequency scales how fast CurrentTime advances (1 = normal speed).
	Frequency *bindable.Bindable[float64]
	// Balance is -1 (left) to 1 (right).
	Balance *bindable.Bindable[float64]

	// Looping wraps playback to RestartPoint instead of ending.
	Looping bool

	Started bindable.Event[*Channel]
	Stopped bindable.Event[*Channel]
	Ended   bindable.Event[*Channel]

	length       float64
	currentTime  float64
	restartPoint float64

	voice       Voice
	groupVolume *bindable.Bindable[float64]
	masterVol   *bindable.Bindable[float64]
	volumeSubs  []*bindable.Subscription

	ended    bool
	disposed bool
}

// NewChannel creates a stopped channel of the given length. voice may be nil.
func NewChannel(name string, length float64, voice Voice) *Channel {
	if length < 0 {
		length = 0
	}
	c := &Channel{
		Name:      name,
		IsRunning: bindable.New(false),
		Volume:    bindable.New(1.0),
		Frequency: bindable.New(1.0),
		Balance:   bindable.New(0.0),
		length:    length,
		voice:     voice,
	}
	c.IsRunning.Subscribe(func(_, running bool) {
		if running {
			if c.voice != nil {
				c.voice.Play()
			}
			c.Started.Emit(c)
			return
		}
		if c.voice != nil {
			c.voice.Pause()
		}
		c.Stopped.Emit(c)
	})
	c.Volume.Subscribe(func(_, _ float64) { c.applyVolume() })
	c.applyVolume()
	return c
}

// Length returns the fixed playback length.
func (c *Channel) Length() float64 {
	return c.length
}

// CurrentTime returns the playback position, always within [0, Length].
func (c *Channel) CurrentTime() float64 {
	return c.currentTime
}

// SetCurrentTime moves the playback position, clamped into [0, Length].
func (c *Channel) SetCurrentTime(t float64) {
	t = clamp(t, 0, c.length)
	if t == c.currentTime {
		return
	}
	c.currentTime = t
	c.seekVoice()
}

// Seek is SetCurrentTime.
func (c *Channel) Seek(t float64) {
	c.SetCurrentTime(t)
}

// RestartPoint returns the position a looping channel wraps back to.
func (c *Channel) RestartPoint() float64 {
	return c.restartPoint
}

// SetRestartPoint sets the loop-back position, clamped into [0, Length].
func (c *Channel) SetRestartPoint(t float64) {
	c.restartPoint = clamp(t, 0, c.length)
}

// HasEnded reports whether the channel reached its end without looping and
// has not been restarted since.
func (c *Channel) HasEnded() bool {
	return c.ended
}

// IsDisposed reports whether Dispose has been called.
func (c *Channel) IsDisposed() bool {
	return c.disposed
}

// Play starts playback from the current position. No-op on zero-length
// media or a disposed channel.
func (c *Channel) Play() {
	if c.disposed || c.length <= 0 {
		return
	}
	c.ended = false
	c.IsRunning.Set(true)
}

// Stop halts playback and rewinds to the start.
func (c *Channel) Stop() {
	c.IsRunning.Set(false)
	c.ended = false
	c.SetCurrentTime(0)
}

// Pause halts playback and keeps the position.
func (c *Channel) Pause() {
	c.IsRunning.Set(false)
}

// Update advances the position by elapsed milliseconds scaled by Frequency.
// Reaching Length wraps a looping channel to RestartPoint, carrying the
// overshoot; otherwise the channel clamps to Length, stops and emits Ended.
func (c *Channel) Update(elapsed float64) {
	if !c.IsRunning.Value() {
		return
	}

	t := c.currentTime + elapsed*c.Frequency.Value()
	if t < c.length {
		c.currentTime = math.Max(t, 0)
		return
	}

	if c.Looping {
		c.currentTime = c.wrap(t)
		c.seekVoice()
		// Device players stop at end of stream; resume at the wrapped position.
		if c.voice != nil {
			c.voice.Play()
		}
		return
	}

	c.currentTime = c.length
	c.ended = true
	c.IsRunning.Set(false)
	c.Ended.Emit(c)
}

// wrap folds a position at or past Length back into [RestartPoint, Length).
func (c *Channel) wrap(t float64) float64 {
	span := c.length - c.restartPoint
	if span <= 0 {
		return c.restartPoint
	}
	return c.restartPoint + math.Mod(t-c.length, span)
}

// EffectiveVolume is Volume times the group and master volumes, in [0, 1].
func (c *Channel) EffectiveVolume() float64 {
	v := c.Volume.Value()
	if c.groupVolume != nil {
		v *= c.groupVolume.Value()
	}
	if c.masterVol != nil {
		v *= c.masterVol.Value()
	}
	return clamp(v, 0, 1)
}

// attachVolumes links the channel to a manager's group and master volumes.
func (c *Channel) attachVolumes(group, master *bindable.Bindable[float64]) {
	c.detachVolumes()
	c.groupVolume = group
	c.masterVol = master
	apply := func(_, _ float64) { c.applyVolume() }
	if group != nil {
		c.volumeSubs = append(c.volumeSubs, group.Subscribe(apply))
	}
	if master != nil {
		c.volumeSubs = append(c.volumeSubs, master.Subscribe(apply))
	}
	c.applyVolume()
}

func (c *Channel) detachVolumes() {
	for _, s := range c.volumeSubs {
		s.Unsubscribe()
	}
	c.volumeSubs = nil
	c.groupVolume = nil
	c.masterVol = nil
}

func (c *Channel) applyVolume() {
	if c.voice != nil {
		c.voice.SetVolume(c.EffectiveVolume())
	}
}

func (c *Channel) seekVoice() {
	if c.voice != nil {
		// Device seek failures leave the voice where it was; the channel's
		// own clock stays authoritative.
		_ = c.voice.Seek(c.currentTime)
	}
}

// Dispose stops the channel, detaches every listener and closes its voice.
// A disposed channel ignores Play.
func (c *Channel) Dispose() {
	if c.disposed {
		return
	}
	c.IsRunning.Set(false)
	c.disposed = true
	c.detachVolumes()

	c.IsRunning.UnbindAll()
	c.Volume.UnbindAll()
	c.Frequency.UnbindAll()
	c.Balance.UnbindAll()
	c.Started.UnbindAll()
	c.Stopped.UnbindAll()
	c.Ended.UnbindAll()

	if c.voice != nil {
		_ = c.voice.Close()
		c.voice = nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
