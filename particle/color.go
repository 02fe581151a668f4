package particle

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/crazy3lf/colorconv"
	"github.com/lucasb-eyer/go-colorful"
)

// pickColor samples a palette entry and applies the config's HSL jitter.
func pickColor(c *EmitterConfig, rng *rand.Rand) (color.NRGBA, int) {
	if len(c.Palette) == 0 {
		return color.NRGBA{}, 0
	}
	idx := rng.Intn(len(c.Palette))
	return jitter(c.Palette[idx], c.HueJitter, c.LightnessJitter, rng), idx
}

func jitter(base color.NRGBA, hue, light float64, rng *rand.Rand) color.NRGBA {
	if hue == 0 && light == 0 {
		return base
	}
	h, s, l := colorconv.RGBToHSL(base.R, base.G, base.B)
	h = math.Mod(h+(rng.Float64()*2-1)*hue+360, 360)
	l = math.Max(0, math.Min(1, l+(rng.Float64()*2-1)*light))
	r, g, b, err := colorconv.HSLToRGB(h, s, l)
	if err != nil {
		return base
	}
	return color.NRGBA{R: r, G: g, B: b, A: base.A}
}

// easeColor moves from toward to by t in Lab space.
func easeColor(from, to color.NRGBA, t float64) color.NRGBA {
	if from == to {
		return from
	}
	a := colorful.Color{R: float64(from.R) / 255, G: float64(from.G) / 255, B: float64(from.B) / 255}
	b := colorful.Color{R: float64(to.R) / 255, G: float64(to.G) / 255, B: float64(to.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	alpha := float64(from.A) + (float64(to.A)-float64(from.A))*t
	out := color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
	// 8-bit rounding stalls small steps; nudge one unit so easing terminates.
	if out == from {
		out = color.NRGBA{R: step(from.R, to.R), G: step(from.G, to.G), B: step(from.B, to.B), A: step(from.A, to.A)}
	}
	return out
}

func step(from, to uint8) uint8 {
	switch {
	case from < to:
		return from + 1
	case from > to:
		return from - 1
	default:
		return from
	}
}
