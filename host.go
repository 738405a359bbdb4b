package cadence

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/phanxgames/cadence/audio"
	"github.com/phanxgames/cadence/internal/config"
	"github.com/phanxgames/cadence/internal/watch"
	"github.com/phanxgames/cadence/stats"
)

// Config is the framework configuration loaded by LoadConfig.
type Config = config.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a YAML, JSON or TOML file over the defaults and applies
// CADENCE_* environment overrides. An empty path loads defaults and
// environment only.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// HostConfig lists what NewHost builds a Host from. Only Config is
// required; nil fields get defaults.
type HostConfig struct {
	Config Config

	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Stats defaults to a fresh registry.
	Stats *stats.Registry
	// Clock is the scene's time source. Defaults to a running StopwatchClock.
	Clock Clock
	// Backend overrides the backend named by Config.Audio.Backend.
	Backend audio.Backend
	// EventSink receives audio channel lifecycle events.
	EventSink audio.EventSink
	// Meter receives the stats export. Defaults to stats.Meter().
	Meter metric.Meter
}

// Host bundles one application session: configuration, logging, statistics,
// audio and the scene. It implements ebiten.Game.
type Host struct {
	Config Config
	Logger zerolog.Logger
	Stats  *stats.Registry
	Audio  *audio.Manager
	Scene  *Scene

	metrics    metric.Registration
	watchers   []*watch.Watcher
	storyboard map[string]*Drawable // watched path -> target
	overlay    debugOverlay
	disposed   bool
}

// NewHost builds every component in dependency order.
func NewHost(hc HostConfig) (*Host, error) {
	cfg := hc.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new host: %w", err)
	}

	logger := zerolog.Nop()
	if hc.Logger != nil {
		logger = *hc.Logger
	}
	reg := hc.Stats
	if reg == nil {
		reg = stats.NewRegistry()
	}

	backend := hc.Backend
	if backend == nil {
		backend = newBackend(cfg.Audio)
	}
	mgr := audio.NewManager(backend,
		audio.WithLogger(logger.With().Str("component", "audio").Logger()),
		audio.WithStats(reg),
		audio.WithEventSink(hc.EventSink),
	)
	mgr.Volume.Set(cfg.Audio.Volume)
	mgr.TrackVolume.Set(cfg.Audio.TrackVolume)
	mgr.SampleVolume.Set(cfg.Audio.SampleVolume)

	source := hc.Clock
	if source == nil {
		sw := NewStopwatchClock()
		sw.Start()
		source = sw
	}
	scene := NewScene(source,
		WithSceneLogger(logger.With().Str("component", "scene").Logger()),
		WithSceneStats(reg),
	)
	scene.SetDebugMode(cfg.Debug)

	meter := hc.Meter
	if meter == nil {
		meter = stats.Meter()
	}
	registration, err := reg.Export(meter)
	if err != nil {
		_ = mgr.Dispose()
		return nil, fmt.Errorf("new host: %w", err)
	}

	logger.Info().
		Str("backend", cfg.Audio.Backend).
		Int("tps", cfg.TPS).
		Bool("debug", cfg.Debug).
		Msg("host ready")

	return &Host{
		Config:     cfg,
		Logger:     logger,
		Stats:      reg,
		Audio:      mgr,
		Scene:      scene,
		metrics:    registration,
		storyboard: make(map[string]*Drawable),
	}, nil
}

func newBackend(cfg config.AudioConfig) audio.Backend {
	if cfg.Backend == config.BackendEbiten {
		return audio.NewEbitenBackend(cfg.SampleRate)
	}
	vb := audio.NewVirtualBackend()
	if cfg.VirtualTrackLength > 0 {
		vb.TrackLength = cfg.VirtualTrackLength
	}
	if cfg.VirtualSampleLength > 0 {
		vb.SampleLength = cfg.VirtualSampleLength
	}
	return vb
}

// Update runs one frame: the scene latches its clock and updates the tree,
// then audio advances by the frame's elapsed time and changed storyboards
// are reloaded.
func (h *Host) Update() error {
	if h.disposed {
		return ebiten.Termination
	}
	h.Scene.Update()
	h.Audio.Update(h.Scene.Clock().ElapsedFrameTime())
	h.reloadStoryboards()
	return nil
}

// Draw renders the scene, plus the stats overlay in debug mode.
func (h *Host) Draw(screen *ebiten.Image) {
	h.Scene.Draw(screen)
	if h.Config.Debug {
		h.overlay.draw(screen, h)
	}
}

// Layout returns the configured logical screen size.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.Config.Window.Width, h.Config.Window.Height
}

// --- Storyboards ---

// WatchStoryboard applies the storyboard at path to target now and again
// every time the file changes, replacing target's pending transforms.
func (h *Host) WatchStoryboard(path string, target *Drawable) error {
	sb, err := LoadStoryboardFile(path)
	if err != nil {
		return err
	}
	sb.Apply(target)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch storyboard %s: %w", path, err)
	}
	w, err := watch.New([]string{filepath.Dir(abs)}, filepath.Ext(abs))
	if err != nil {
		return fmt.Errorf("watch storyboard %s: %w", path, err)
	}
	h.watchers = append(h.watchers, w)
	h.storyboard[abs] = target
	h.Logger.Info().Str("path", abs).Str("target", target.Name).Msg("watching storyboard")
	return nil
}

func (h *Host) reloadStoryboards() {
	for _, w := range h.watchers {
		for {
			name, ok := w.Poll()
			if !ok {
				break
			}
			h.reloadStoryboard(name)
		}
		select {
		case err, ok := <-w.Errors:
			if ok {
				h.Logger.Warn().Err(err).Msg("storyboard watcher error")
			}
		default:
		}
	}
}

func (h *Host) reloadStoryboard(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}
	target, ok := h.storyboard[abs]
	if !ok || target.IsDisposed() {
		return
	}
	sb, err := LoadStoryboardFile(abs)
	if err != nil {
		h.Logger.Error().Err(err).Str("path", abs).Msg("storyboard reload failed")
		return
	}
	target.ClearTransforms()
	sb.Apply(target)
	h.Logger.Info().Str("path", abs).Int("steps", sb.Len()).Msg("storyboard reloaded")
}

// Dispose stops watchers, tears down audio and the scene and unregisters
// the stats export. Calling it again is a no-op.
func (h *Host) Dispose() error {
	if h.disposed {
		return nil
	}
	h.disposed = true

	var errs []error
	for _, w := range h.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close watcher: %w", err))
		}
	}
	h.watchers = nil
	if err := h.Audio.Dispose(); err != nil {
		errs = append(errs, err)
	}
	h.Scene.Dispose()
	if h.metrics != nil {
		if err := h.metrics.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("unregister metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Run opens a window sized from the host's config and runs the game loop
// until the window closes, then disposes the host.
func Run(h *Host) error {
	ebiten.SetWindowTitle(h.Config.Window.Title)
	ebiten.SetWindowSize(h.Config.Window.Width, h.Config.Window.Height)
	ebiten.SetTPS(h.Config.TPS)

	runErr := ebiten.RunGame(h)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	return errors.Join(runErr, h.Dispose())
}
