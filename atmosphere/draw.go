package atmosphere

import (
	"image/color"
	"math"

	"atmos/particle"
)

// Blob gradient: a soft-edged puff that darkens slightly toward its rim.
var (
	blobOffsets = [...]float64{0, 0.35, 0.65, 1}
	blobAlphas  = [...]float64{1, 0.6, 0.25, 0}
	blobShade   = [...]uint8{0, 10, 20, 30}
)

const (
	moteGlowScale = 2.0
	leafAspect    = 0.5
	petalAspect   = 0.6
	snowGlowSize  = 3.0
)

func (c *Controller) render(sink RenderSink) {
	sink.Clear()
	for _, l := range c.order {
		f := c.fields[l]
		fade := f.Fade()
		if fade < minVisibleFade {
			continue
		}
		for i := range f.Particles() {
			c.drawParticle(sink, &f.Particles()[i], fade)
		}
	}
	if p, ok := sink.(Presenter); ok {
		p.Present()
	}
}

func (c *Controller) drawParticle(sink RenderSink, p *particle.State, fade float64) {
	alpha := p.Opacity * fade
	if alpha <= 0 {
		return
	}
	center := Point{X: p.DrawX(), Y: p.Y}

	switch p.Kind {
	case particle.KindWisp:
		var stops [len(blobOffsets)]GradientStop
		sink.DrawBlob(center, p.Size*p.StretchX, p.Size*p.StretchY, blobStops(stops[:0], p.Color, alpha))

	case particle.KindMote:
		var stops [len(blobOffsets)]GradientStop
		r := p.Size * moteGlowScale
		sink.DrawBlob(center, r, r, blobStops(stops[:0], p.Color, alpha))

	case particle.KindBird:
		left, right := wings()
		flap := flapFactor(p.FlapPhase)
		if p.Gliding() {
			flap = flapFactor(0)
		}
		clr := Scale(p.Color, alpha)
		width := math.Max(1, wingStroke*p.Size/wingViewBox)
		c.scratch[0] = wingPoints(left, center, p.Size, flap, p.FlipY, c.scratch[0])
		c.scratch[1] = wingPoints(right, center, p.Size, flap, p.FlipY, c.scratch[1])
		sink.DrawStrokePath(c.scratch[0], width, clr)
		sink.DrawStrokePath(c.scratch[1], width, clr)

	case particle.KindLeaf:
		sink.DrawFilledEllipse(center, p.Size, p.Size*leafAspect, p.Rotation, Scale(p.Color, alpha))

	case particle.KindPetal:
		sink.DrawFilledEllipse(center, p.Size, p.Size*petalAspect, p.Rotation, Scale(p.Color, alpha))

	case particle.KindSnowflake:
		sink.DrawFilledCircle(center, p.Size, Scale(p.Color, alpha), p.Size > snowGlowSize)
	}
}

func blobStops(dst []GradientStop, base color.NRGBA, alpha float64) []GradientStop {
	for i, off := range blobOffsets {
		c := base
		c.R = darken(c.R, blobShade[i])
		c.G = darken(c.G, blobShade[i])
		c.B = darken(c.B, blobShade[i])
		dst = append(dst, GradientStop{Offset: off, Color: Scale(c, alpha*blobAlphas[i])})
	}
	return dst
}

func darken(v, by uint8) uint8 {
	if v < by {
		return 0
	}
	return v - by
}
