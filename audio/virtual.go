package audio

import "io"

// Default synthetic lengths used by VirtualBackend, in milliseconds.
const (
	DefaultVirtualTrackLength  = 60000.0
	DefaultVirtualSampleLength = 1000.0
)

// VirtualBackend is a headless backend. Nothing is decoded: every track and
// sample gets a fixed synthetic length and plays without device output.
type VirtualBackend struct {
	TrackLength  float64
	SampleLength float64
}

// NewVirtualBackend returns a VirtualBackend with the default lengths.
func NewVirtualBackend() *VirtualBackend {
	return &VirtualBackend{
		TrackLength:  DefaultVirtualTrackLength,
		SampleLength: DefaultVirtualSampleLength,
	}
}

// LoadTrack drains r and returns a source of TrackLength.
func (b *VirtualBackend) LoadTrack(_ string, r io.Reader) (Source, error) {
	if err := drain(r); err != nil {
		return nil, err
	}
	return virtualSource(b.TrackLength), nil
}

// LoadSample drains r and returns a source of SampleLength.
func (b *VirtualBackend) LoadSample(_ string, r io.Reader) (Source, error) {
	if err := drain(r); err != nil {
		return nil, err
	}
	return virtualSource(b.SampleLength), nil
}

// Close is a no-op.
func (b *VirtualBackend) Close() error {
	return nil
}

func drain(r io.Reader) error {
	if r == nil {
		return nil
	}
	_, err := io.Copy(io.Discard, r)
	return err
}

type virtualSource float64

func (s virtualSource) Length() float64 {
	return float64(s)
}

func (s virtualSource) NewVoice() (Voice, error) {
	return nil, nil
}
