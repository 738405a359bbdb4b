package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// bytesPerFrame is 16-bit signed stereo, the format Ebitengine decoders
// produce.
const bytesPerFrame = 4

// Format is an encoded audio container recognised by EbitenBackend.
type Format uint8

const (
	FormatMP3 Format = iota
	FormatWAV
	FormatVorbis
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatVorbis:
		return "vorbis"
	default:
		return "mp3"
	}
}

// DetectFormat sniffs the container from the first bytes of data. Anything
// that is neither RIFF/WAVE nor Ogg is treated as MP3.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return FormatWAV
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return FormatVorbis
	default:
		return FormatMP3
	}
}

// EbitenBackend plays through Ebitengine's audio context.
//
// Tracks keep their encoded bytes and decode a fresh stream per voice.
// Samples are decoded to PCM once so overlapping plays are cheap.
type EbitenBackend struct {
	ctx *eaudio.Context
}

// NewEbitenBackend returns a backend bound to the process audio context,
// creating it at sampleRate if none exists yet. Ebitengine allows one
// context per process, so an existing context's rate wins.
func NewEbitenBackend(sampleRate int) *EbitenBackend {
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(sampleRate)
	}
	return &EbitenBackend{ctx: ctx}
}

// SampleRate returns the audio context's sample rate.
func (b *EbitenBackend) SampleRate() int {
	return b.ctx.SampleRate()
}

func (b *EbitenBackend) decode(name string, data []byte) (io.Reader, int64, error) {
	sr := b.ctx.SampleRate()
	format := DetectFormat(data)
	var (
		stream interface {
			io.Reader
			Length() int64
		}
		err error
	)
	switch format {
	case FormatWAV:
		stream, err = wav.DecodeWithSampleRate(sr, bytes.NewReader(data))
	case FormatVorbis:
		stream, err = vorbis.DecodeWithSampleRate(sr, bytes.NewReader(data))
	default:
		stream, err = mp3.DecodeWithSampleRate(sr, bytes.NewReader(data))
	}
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decode %s as %s: %w", name, format, err)
	}
	return stream, stream.Length(), nil
}

func (b *EbitenBackend) lengthMs(n int64) float64 {
	return float64(n) / bytesPerFrame / float64(b.ctx.SampleRate()) * 1000
}

// LoadTrack reads r fully and validates that it decodes.
func (b *EbitenBackend) LoadTrack(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", name, err)
	}
	_, n, err := b.decode(name, data)
	if err != nil {
		return nil, err
	}
	return &ebitenTrackSource{backend: b, name: name, data: data, length: b.lengthMs(n)}, nil
}

// LoadSample reads and decodes r to PCM.
func (b *EbitenBackend) LoadSample(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", name, err)
	}
	stream, _, err := b.decode(name, data)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	return &ebitenSampleSource{ctx: b.ctx, pcm: pcm, length: b.lengthMs(int64(len(pcm)))}, nil
}

// Close is a no-op; the Ebitengine context lives for the whole process.
func (b *EbitenBackend) Close() error {
	return nil
}

type ebitenTrackSource struct {
	backend *EbitenBackend
	name    string
	data    []byte
	length  float64
}

func (s *ebitenTrackSource) Length() float64 {
	return s.length
}

func (s *ebitenTrackSource) NewVoice() (Voice, error) {
	stream, _, err := s.backend.decode(s.name, s.data)
	if err != nil {
		return nil, err
	}
	p, err := s.backend.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: new player %s: %w", s.name, err)
	}
	return &ebitenVoice{player: p}, nil
}

type ebitenSampleSource struct {
	ctx    *eaudio.Context
	pcm    []byte
	length float64
}

func (s *ebitenSampleSource) Length() float64 {
	return s.length
}

func (s *ebitenSampleSource) NewVoice() (Voice, error) {
	return &ebitenVoice{player: s.ctx.NewPlayerFromBytes(s.pcm)}, nil
}

// ebitenVoice adapts *audio.Player to Voice.
type ebitenVoice struct {
	player *eaudio.Player
}

func (v *ebitenVoice) Play()  { v.player.Play() }
func (v *ebitenVoice) Pause() { v.player.Pause() }

func (v *ebitenVoice) Seek(ms float64) error {
	return v.player.SetPosition(time.Duration(ms * float64(time.Millisecond)))
}

func (v *ebitenVoice) SetVolume(vol float64) {
	v.player.SetVolume(vol)
}

func (v *ebitenVoice) Close() error {
	return v.player.Close()
}
