package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"atmos/atmosphere"
	"atmos/phase"
)

const skyBands = 24

// sky is the backdrop gradient of one season
type sky struct {
	top, bottom, ground color.RGBA
}

var skies = map[phase.Season]sky{
	phase.Spring: {top: color.RGBA{150, 190, 220, 255}, bottom: color.RGBA{225, 235, 225, 255}, ground: color.RGBA{120, 160, 100, 255}},
	phase.Summer: {top: color.RGBA{110, 170, 225, 255}, bottom: color.RGBA{235, 230, 200, 255}, ground: color.RGBA{130, 150, 80, 255}},
	phase.Autumn: {top: color.RGBA{170, 150, 140, 255}, bottom: color.RGBA{230, 205, 170, 255}, ground: color.RGBA{150, 100, 50, 255}},
	phase.Winter: {top: color.RGBA{120, 135, 160, 255}, bottom: color.RGBA{215, 225, 235, 255}, ground: color.RGBA{225, 230, 240, 255}},
}

var (
	heroCardColor = color.RGBA{30, 40, 55, 255}
	overlayColor  = color.RGBA{0, 0, 0, 140}
)

// Renderer draws everything under and over the atmosphere
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DrawBackdrop paints the season sky, the map ground once the hero starts
// diving, and the landing hero card scaled and faded by the dive.
func (r *Renderer) DrawBackdrop(screen *ebiten.Image, mode phase.Mode, heroScale, heroAlpha float64) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	s := skies[mode.Season]

	bandH := h / skyBands
	for i := 0; i < skyBands; i++ {
		t := float64(i) / (skyBands - 1)
		vector.DrawFilledRect(screen, 0, float32(float64(i)*bandH), float32(w), float32(bandH+1), lerpRGBA(s.top, s.bottom, t), false)
	}

	if mode.Phase != phase.Landing {
		groundY := h * 0.72
		vector.DrawFilledRect(screen, 0, float32(groundY), float32(w), float32(h-groundY), s.ground, false)
	}

	if mode.Phase != phase.Map && heroAlpha > 0 {
		x, y, cw, ch := heroRect(w, h, heroScale)
		card := heroCardColor
		card.A = uint8(float64(card.A) * heroAlpha)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(cw), float32(ch), card, true)
		ebitenutil.DebugPrintAt(screen, "ATMOS  -  press Enter to explore", int(x)+16, int(y)+16)
	}
}

// DrawDebug prints the mode, FPS and per-layer particle stats
func (r *Renderer) DrawDebug(screen *ebiten.Image, mode phase.Mode, stats []atmosphere.LayerStats, fps float64, profiling bool) {
	text := debugText(mode, stats, fps, profiling)
	lines := strings.Count(text, "\n")
	vector.DrawFilledRect(screen, 0, 0, 420, float32(lines*16+8), overlayColor, false)
	ebitenutil.DebugPrint(screen, text)
}

func debugText(mode phase.Mode, stats []atmosphere.LayerStats, fps float64, profiling bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.0f  mode: %s\n", fps, mode)
	if profiling {
		sb.WriteString("capturing profile...\n")
	}
	for _, s := range stats {
		fmt.Fprintf(&sb, "%-6s %-14s %-9s n=%-4d fade=%.2f wraps=%d\n", s.Layer, s.Name, s.Kind, s.Count, s.Fade, s.Wraps)
	}
	return sb.String()
}

// heroRect returns the hero card centred on a w x h screen and zoomed by scale.
func heroRect(w, h, scale float64) (x, y, cw, ch float64) {
	cw, ch = w*0.5*scale, h*0.3*scale
	return (w - cw) / 2, (h - ch) / 2, cw, ch
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}
