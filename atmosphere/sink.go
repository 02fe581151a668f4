package atmosphere

import "image/color"

// Point is a position on the drawing surface in device pixels.
type Point struct {
	X, Y float64
}

// GradientStop is one colour stop of a radial gradient. Offset runs from 0 at
// the centre to 1 at the rim.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// RenderSink is the drawing surface the controller paints every frame.
// Colours are non-premultiplied. A sink is only touched from inside Tick or
// Render, so implementations need no locking of their own.
type RenderSink interface {
	// Clear wipes the surface to fully transparent.
	Clear()
	// DrawBlob fills an axis-aligned ellipse with a radial gradient.
	DrawBlob(center Point, radiusX, radiusY float64, stops []GradientStop)
	// DrawStrokePath strokes an open polyline with round caps.
	DrawStrokePath(points []Point, width float64, clr color.NRGBA)
	// DrawFilledEllipse fills an ellipse rotated by rotation radians.
	DrawFilledEllipse(center Point, radiusX, radiusY, rotation float64, clr color.NRGBA)
	// DrawFilledCircle fills a circle, optionally with a soft halo.
	DrawFilledCircle(center Point, radius float64, clr color.NRGBA, glow bool)
}

// Presenter is implemented by sinks that buffer a frame and need to push it
// out once every primitive is drawn.
type Presenter interface {
	Present()
}

// Scale returns c with its alpha multiplied by a, clamped to [0, 1].
func Scale(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
