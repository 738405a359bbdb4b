package cadence

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugLog reports frame timing and warns about tree shapes that tend to
// hurt update time.
func (s *Scene) debugLog(elapsed time.Duration, counts treeCounts) {
	s.logger.Debug().
		Dur("update", elapsed).
		Int("drawables", counts.drawables).
		Int("transforms", counts.transforms).
		Float64("time", s.clock.CurrentTime()).
		Float64("elapsed", s.clock.ElapsedFrameTime()).
		Msg("frame")

	if counts.maxDepth > debugMaxTreeDepth {
		s.logger.Warn().
			Int("depth", counts.maxDepth).
			Int("threshold", debugMaxTreeDepth).
			Msg("tree depth exceeds threshold")
	}
	if w := counts.widest; w != nil && len(w.children) > debugMaxChildCount {
		s.logger.Warn().
			Str("drawable", w.Name).
			Int("children", len(w.children)).
			Int("threshold", debugMaxChildCount).
			Msg("child count exceeds threshold")
	}
}

// DumpHierarchy writes one line per drawable in root's subtree, indented by
// depth, with its type, position, size, alpha and pending transform count.
func DumpHierarchy(w io.Writer, root *Drawable) error {
	return dumpDrawable(w, root, 0)
}

func dumpDrawable(w io.Writer, d *Drawable, depth int) error {
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("#%d", d.ID)
	}
	hidden := ""
	if !d.Visible {
		hidden = " hidden"
	}
	_, err := fmt.Fprintf(w, "%s%s [%s] pos=(%g,%g) size=(%g,%g) alpha=%g transforms=%d%s\n",
		strings.Repeat("  ", depth), name, d.Type,
		d.Position.X, d.Position.Y, d.Size.X, d.Size.Y, d.Alpha,
		len(d.transforms), hidden)
	if err != nil {
		return fmt.Errorf("dump hierarchy: %w", err)
	}
	for _, child := range d.children {
		if err := dumpDrawable(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
