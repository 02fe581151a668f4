// Package canvas draws the atmosphere onto an HTML canvas through gopherjs.
package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/gopherjs/gopherjs/js"

	"atmos/atmosphere"
)

const (
	frameMillis = 1000.0 / 60
	// Longest step a single animation frame may take, e.g. after a tab
	// comes back from the background.
	maxStep     = 3.0
	glowBlur    = 6.0
	tau         = 2 * math.Pi
	glowOpacity = 0.35
)

// Sink paints into the 2D context of a canvas element.
type Sink struct {
	canvas *js.Object
	ctx    *js.Object
}

// New binds a sink to canvas. A missing element fails with
// atmosphere.ErrNoSurface.
func New(canvas *js.Object) (*Sink, error) {
	if canvas == nil || canvas == js.Undefined {
		return nil, fmt.Errorf("canvas: element not found: %w", atmosphere.ErrNoSurface)
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx == nil || ctx == js.Undefined {
		return nil, fmt.Errorf("canvas: 2d context unavailable: %w", atmosphere.ErrNoSurface)
	}
	return &Sink{canvas: canvas, ctx: ctx}, nil
}

// Lookup finds the canvas with the given element id.
func Lookup(id string) (*Sink, error) {
	doc := js.Global.Get("document")
	return New(doc.Call("getElementById", id))
}

// Size returns the canvas size in pixels.
func (s *Sink) Size() (width, height float64) {
	return s.canvas.Get("width").Float(), s.canvas.Get("height").Float()
}

// FitWindow sizes the canvas to the browser window.
func (s *Sink) FitWindow() (width, height float64) {
	w := js.Global.Get("innerWidth").Int()
	h := js.Global.Get("innerHeight").Int()
	s.canvas.Set("width", w)
	s.canvas.Set("height", h)
	return float64(w), float64(h)
}

// Clear wipes the canvas to transparent.
func (s *Sink) Clear() {
	w, h := s.Size()
	s.ctx.Call("clearRect", 0, 0, w, h)
}

// DrawBlob fills an ellipse with a radial gradient by scaling a unit circle.
func (s *Sink) DrawBlob(center atmosphere.Point, rx, ry float64, stops []atmosphere.GradientStop) {
	if rx <= 0 || ry <= 0 || len(stops) == 0 {
		return
	}
	s.ctx.Call("save")
	s.ctx.Call("translate", center.X, center.Y)
	s.ctx.Call("scale", rx, ry)
	g := s.ctx.Call("createRadialGradient", 0, 0, 0, 0, 0, 1)
	for _, st := range stops {
		g.Call("addColorStop", st.Offset, rgba(st.Color))
	}
	s.ctx.Set("fillStyle", g)
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", 0, 0, 1, 0, tau)
	s.ctx.Call("fill")
	s.ctx.Call("restore")
}

// DrawStrokePath strokes an open polyline with round caps and joins.
func (s *Sink) DrawStrokePath(points []atmosphere.Point, width float64, clr color.NRGBA) {
	if len(points) < 2 {
		return
	}
	s.ctx.Set("lineWidth", width)
	s.ctx.Set("lineCap", "round")
	s.ctx.Set("lineJoin", "round")
	s.ctx.Set("strokeStyle", rgba(clr))
	s.ctx.Call("beginPath")
	s.ctx.Call("moveTo", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.ctx.Call("lineTo", p.X, p.Y)
	}
	s.ctx.Call("stroke")
}

// DrawFilledEllipse fills an ellipse rotated by rotation radians.
func (s *Sink) DrawFilledEllipse(center atmosphere.Point, rx, ry, rotation float64, clr color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.ctx.Set("fillStyle", rgba(clr))
	s.ctx.Call("beginPath")
	s.ctx.Call("ellipse", center.X, center.Y, rx, ry, rotation, 0, tau)
	s.ctx.Call("fill")
}

// DrawFilledCircle fills a circle; glow blurs a faint shadow around it.
func (s *Sink) DrawFilledCircle(center atmosphere.Point, r float64, clr color.NRGBA, glow bool) {
	if r <= 0 {
		return
	}
	if glow {
		s.ctx.Set("shadowBlur", glowBlur)
		s.ctx.Set("shadowColor", rgba(atmosphere.Scale(clr, glowOpacity)))
	}
	s.ctx.Set("fillStyle", rgba(clr))
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", center.X, center.Y, r, 0, tau)
	s.ctx.Call("fill")
	if glow {
		s.ctx.Set("shadowBlur", 0)
	}
}

// Run drives ctrl from requestAnimationFrame, scaling each step by the real
// frame time, and keeps the canvas sized to the window. onFrame hooks run at
// the start of every frame, before the atmosphere advances. The returned func
// cancels the pending frame, detaches the resize listener and stops the hooks.
func (s *Sink) Run(ctrl *atmosphere.Controller, onFrame ...func()) (stop func()) {
	ctrl.Resize(s.FitWindow())
	// One wrapped listener so removeEventListener sees the same function.
	onResize := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		ctrl.Resize(s.FitWindow())
		return nil
	})
	js.Global.Call("addEventListener", "resize", onResize)

	var (
		frameID int
		last    float64
		stopped bool
		frame   func(now float64)
	)
	frame = func(now float64) {
		if stopped {
			return
		}
		frameID = js.Global.Call("requestAnimationFrame", frame).Int()
		for _, fn := range onFrame {
			fn()
		}
		step := 1.0
		if last > 0 {
			step = math.Min(maxStep, (now-last)/frameMillis)
		}
		last = now
		ctrl.Advance(step)
		ctrl.Render(s)
	}
	frameID = js.Global.Call("requestAnimationFrame", frame).Int()

	return func() {
		if stopped {
			return
		}
		stopped = true
		js.Global.Call("cancelAnimationFrame", frameID)
		js.Global.Call("removeEventListener", "resize", onResize)
	}
}

func rgba(c color.NRGBA) string {
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + "," +
		strconv.FormatFloat(float64(c.A)/0xff, 'f', 3, 64) + ")"
}

var _ atmosphere.RenderSink = (*Sink)(nil)
