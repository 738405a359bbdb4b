package audio

import "io"

// Backend decodes media into playable sources. Readers passed to the Load
// methods are consumed before they return.
type Backend interface {
	LoadTrack(name string, r io.Reader) (Source, error)
	LoadSample(name string, r io.Reader) (Source, error)
	Close() error
}

// Source is decoded media of a fixed length.
type Source interface {
	// Length returns the playback length in milliseconds.
	Length() float64
	// NewVoice returns a fresh playback handle. A nil Voice with a nil error
	// means the source has no device output.
	NewVoice() (Voice, error)
}

// Voice is a device playback handle that a Channel keeps in sync with its
// own state.
type Voice interface {
	Play()
	Pause()
	Seek(ms float64) error
	SetVolume(v float64)
	Close() error
}
