package cadence

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/cadence/stats"
)

const statsGroup = "scene"

// Scene owns the drawable tree and the frame clock every drawable in it
// reads by default.
type Scene struct {
	root   *Drawable
	clock  *FramedClock
	logger zerolog.Logger
	debug  bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	whitePixel *ebiten.Image
	drawOp     ebiten.DrawImageOptions
	walk       []*Drawable

	statDrawables  *stats.Stat
	statTransforms *stats.Stat
	statFrameTime  *stats.Stat
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithSceneLogger sets the scene's logger. The default discards everything.
func WithSceneLogger(l zerolog.Logger) SceneOption {
	return func(s *Scene) { s.logger = l }
}

// WithSceneStats reports tree and frame statistics into r under the
// "scene" group.
func WithSceneStats(r *stats.Registry) SceneOption {
	return func(s *Scene) {
		if r == nil {
			return
		}
		s.statDrawables = r.Get(statsGroup, "drawables")
		s.statTransforms = r.Get(statsGroup, "transforms")
		s.statFrameTime = r.Get(statsGroup, "frameTimeMs")
	}
}

// NewScene creates a scene whose frame clock follows source. The root
// container carries the clock, so every drawable added under it inherits it.
func NewScene(source Clock, opts ...SceneOption) *Scene {
	clock := NewFramedClock(source)
	root := NewContainer("root")
	root.SetClock(clock)
	s := &Scene{
		root:   root,
		clock:  clock,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the scene's root container.
func (s *Scene) Root() *Drawable {
	return s.root
}

// Clock returns the scene's frame clock.
func (s *Scene) Clock() *FramedClock {
	return s.clock
}

// SetDebugMode enables per-frame timing logs and tree shape warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetLogger replaces the scene's logger.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Update latches the frame clock, runs OnUpdate callbacks and transforms
// over the whole tree in depth-first order, then refreshes world transforms.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug || s.statFrameTime != nil {
		t0 = time.Now()
	}

	s.clock.ProcessFrame()

	counts := treeCounts{walk: s.walk[:0]}
	updateTree(s.root, &counts)
	s.walk = counts.walk
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.statDrawables != nil {
		s.statDrawables.Set(float64(counts.drawables))
		s.statTransforms.Set(float64(counts.transforms))
	}
	if t0.IsZero() {
		return
	}
	elapsed := time.Since(t0)
	if s.statFrameTime != nil {
		s.statFrameTime.Set(float64(elapsed) / float64(time.Millisecond))
	}
	if s.debug {
		s.debugLog(elapsed, counts)
	}
}

type treeCounts struct {
	drawables  int
	transforms int
	maxDepth   int
	widest     *Drawable

	// walk holds a snapshot of each level's children while it is visited.
	walk []*Drawable
}

func updateTree(d *Drawable, counts *treeCounts) {
	updateTreeDepth(d, counts, 1)
}

func updateTreeDepth(d *Drawable, counts *treeCounts, depth int) {
	counts.drawables++
	if depth > counts.maxDepth {
		counts.maxDepth = depth
	}
	if counts.widest == nil || len(d.children) > len(counts.widest.children) {
		counts.widest = d
	}

	if d.OnUpdate != nil {
		d.OnUpdate(d)
	}
	if d.HasTransforms() {
		d.UpdateTransforms()
	}
	counts.transforms += len(d.transforms)

	// OnUpdate and scheduled actions may reshape the tree; walk a snapshot
	// and skip children detached earlier in the same pass.
	base := len(counts.walk)
	counts.walk = append(counts.walk, d.children...)
	end := len(counts.walk)
	for i := base; i < end; i++ {
		c := counts.walk[i]
		if c.Parent != d || c.disposed {
			continue
		}
		updateTreeDepth(c, counts, depth+1)
	}
	clear(counts.walk[base:end])
	counts.walk = counts.walk[:base]
}

// Draw renders every visible box as a tinted quad. Containers draw nothing
// but hide their subtree when invisible.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(toRGBA(s.ClearColor))
	}
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(color.White)
	}
	s.drawDrawable(screen, s.root)
}

func (s *Scene) drawDrawable(screen *ebiten.Image, d *Drawable) {
	if !d.Visible {
		return
	}
	if d.Type == DrawableBox && d.Size.X > 0 && d.Size.Y > 0 {
		a := float32(d.Color.A * d.worldAlpha)
		if a > 0 {
			op := &s.drawOp
			op.GeoM.Reset()
			op.GeoM.Scale(d.Size.X, d.Size.Y)
			op.GeoM.Concat(geoM(d.worldTransform))
			op.ColorScale.Reset()
			op.ColorScale.Scale(float32(d.Color.R)*a, float32(d.Color.G)*a, float32(d.Color.B)*a, a)
			screen.DrawImage(s.whitePixel, op)
		}
	}
	for _, child := range d.children {
		s.drawDrawable(screen, child)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// toRGBA converts c to premultiplied 8-bit RGBA.
func toRGBA(c Color) color.RGBA {
	cl := func(v float64) uint8 { return uint8(v*255 + 0.5) }
	a := clamp01(c.A)
	return color.RGBA{R: cl(clamp01(c.R) * a), G: cl(clamp01(c.G) * a), B: cl(clamp01(c.B) * a), A: cl(a)}
}

// Dispose disposes the whole tree.
func (s *Scene) Dispose() {
	s.root.Dispose()
	if s.whitePixel != nil {
		s.whitePixel.Deallocate()
		s.whitePixel = nil
	}
}
