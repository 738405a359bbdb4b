package cadence

import "time"

// Clock is a source of monotonic time in milliseconds.
type Clock interface {
	CurrentTime() float64
}

// --- ManualClock ---

// ManualClock only moves when told to. Useful for tests and for driving a
// scene from an external timeline.
type ManualClock struct {
	time float64
}

// NewManualClock returns a clock reading t.
func NewManualClock(t float64) *ManualClock {
	return &ManualClock{time: t}
}

// CurrentTime returns the clock's time.
func (c *ManualClock) CurrentTime() float64 {
	return c.time
}

// Set moves the clock to t. Values lower than the current time are ignored.
func (c *ManualClock) Set(t float64) {
	if t > c.time {
		c.time = t
	}
}

// Advance moves the clock forward by ms. Negative values are ignored.
func (c *ManualClock) Advance(ms float64) {
	if ms > 0 {
		c.time += ms
	}
}

// --- StopwatchClock ---

// StopwatchClock measures real time while running, scaled by Rate.
type StopwatchClock struct {
	rate      float64
	running   bool
	startedAt time.Time
	banked    float64 // ms accumulated before the current run

	now func() time.Time
}

// NewStopwatchClock returns a stopped clock at zero with Rate 1.
func NewStopwatchClock() *StopwatchClock {
	return &StopwatchClock{rate: 1, now: time.Now}
}

// CurrentTime returns elapsed running time in milliseconds.
func (c *StopwatchClock) CurrentTime() float64 {
	if !c.running {
		return c.banked
	}
	return c.banked + c.sinceStart()
}

func (c *StopwatchClock) sinceStart() float64 {
	return float64(c.now().Sub(c.startedAt)) / float64(time.Millisecond) * c.rate
}

// Start resumes measuring. No-op if already running.
func (c *StopwatchClock) Start() {
	if c.running {
		return
	}
	c.startedAt = c.now()
	c.running = true
}

// Stop pauses measuring, keeping the elapsed time.
func (c *StopwatchClock) Stop() {
	if !c.running {
		return
	}
	c.banked += c.sinceStart()
	c.running = false
}

// IsRunning reports whether the clock is measuring.
func (c *StopwatchClock) IsRunning() bool {
	return c.running
}

// Reset zeroes the elapsed time. A running clock keeps running from zero.
func (c *StopwatchClock) Reset() {
	c.banked = 0
	c.startedAt = c.now()
}

// Rate returns the speed multiplier.
func (c *StopwatchClock) Rate() float64 {
	return c.rate
}

// SetRate changes the speed multiplier from now on. Negative rates are
// treated as zero so time never runs backwards.
func (c *StopwatchClock) SetRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	if c.running {
		c.banked += c.sinceStart()
		c.startedAt = c.now()
	}
	c.rate = rate
}

// --- FramedClock ---

// FramedClock latches a source clock once per frame so every reader during
// the frame sees the same time.
type FramedClock struct {
	source  Clock
	current float64
	elapsed float64
}

// NewFramedClock wraps source, latching its current time.
func NewFramedClock(source Clock) *FramedClock {
	if source == nil {
		panic("cadence: framed clock needs a source")
	}
	return &FramedClock{source: source, current: source.CurrentTime()}
}

// Source returns the wrapped clock.
func (c *FramedClock) Source() Clock {
	return c.source
}

// ProcessFrame latches the source's time. A source that moved backwards
// yields a zero-length frame.
func (c *FramedClock) ProcessFrame() {
	t := c.source.CurrentTime()
	if t < c.current {
		c.elapsed = 0
		return
	}
	c.elapsed = t - c.current
	c.current = t
}

// CurrentTime returns the time latched by the last ProcessFrame.
func (c *FramedClock) CurrentTime() float64 {
	return c.current
}

// ElapsedFrameTime returns the milliseconds between the last two frames.
func (c *FramedClock) ElapsedFrameTime() float64 {
	return c.elapsed
}
