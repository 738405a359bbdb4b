package audio

// Track is long-form media such as music. Each Play creates a new channel
// in the manager's track volume group.
type Track struct {
	Name string

	// Looping and RestartPoint seed every channel the track plays.
	Looping      bool
	RestartPoint float64

	source  Source
	manager *Manager
}

// Length returns the decoded length in milliseconds.
func (t *Track) Length() float64 {
	return t.source.Length()
}

// Play creates a channel for the track, registers it with the manager and
// starts it.
func (t *Track) Play() *Channel {
	return t.manager.play(t.Name, t.source, t.manager.TrackVolume, func(c *Channel) {
		c.Looping = t.Looping
		c.SetRestartPoint(t.RestartPoint)
	})
}

// Sample is a short sound effect. Every Play creates an independent channel
// in the manager's sample volume group, so plays may overlap.
type Sample struct {
	Name string

	source  Source
	manager *Manager
}

// Length returns the decoded length in milliseconds.
func (s *Sample) Length() float64 {
	return s.source.Length()
}

// Play creates a channel for the sample, registers it with the manager and
// starts it.
func (s *Sample) Play() *Channel {
	return s.manager.play(s.Name, s.source, s.manager.SampleVolume, nil)
}
