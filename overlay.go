package cadence

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often the debug overlay text is rebuilt, in ms.
const overlayRefresh = 500

// debugOverlay prints FPS, TPS and every registered statistic in the
// top-left corner. The text is rebuilt every overlayRefresh milliseconds.
type debugOverlay struct {
	text      string
	lastBuild float64
	built     bool
}

func (o *debugOverlay) draw(screen *ebiten.Image, h *Host) {
	now := h.Scene.Clock().CurrentTime()
	if !o.built || now-o.lastBuild >= overlayRefresh {
		o.text = overlayText(h, ebiten.ActualFPS(), ebiten.ActualTPS())
		o.lastBuild = now
		o.built = true
	}
	ebitenutil.DebugPrint(screen, o.text)
}

func overlayText(h *Host, fps, tps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", fps, tps)
	for _, e := range h.Stats.Snapshot() {
		fmt.Fprintf(&b, "%s.%s: %g\n", e.Group, e.Name, e.Value)
	}
	return b.String()
}
