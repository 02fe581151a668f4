// Package raster is a software RenderSink that paints into an *image.RGBA.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"atmos/atmosphere"
)

const (
	glowScale   = 2.2
	glowOpacity = 0.35
)

// Sink rasterizes atmosphere primitives with rasterx. It is not safe for
// concurrent use.
type Sink struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
	w, h    int

	// Stats for tests and overlays.
	Calls map[string]int
}

// New creates a sink with a transparent width x height canvas.
func New(width, height int) (*Sink, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d: %w", width, height, atmosphere.ErrNoSurface)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return NewOn(img), nil
}

// NewOn creates a sink painting into img.
func NewOn(img *image.RGBA) *Sink {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, b)
	return &Sink{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		stroker: rasterx.NewStroker(w, h, scanner),
		w:       w,
		h:       h,
		Calls:   make(map[string]int),
	}
}

// Image returns the canvas.
func (s *Sink) Image() *image.RGBA { return s.img }

// Size returns the canvas size in pixels.
func (s *Sink) Size() (width, height int) { return s.w, s.h }

// Clear wipes the canvas to transparent.
func (s *Sink) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.Calls["clear"]++
}

// DrawBlob fills an ellipse with a radial gradient stretched to its bounds.
func (s *Sink) DrawBlob(center atmosphere.Point, rx, ry float64, stops []atmosphere.GradientStop) {
	if rx <= 0 || ry <= 0 || len(stops) == 0 {
		return
	}
	g := &rasterx.Gradient{
		Points:   [5]float64{0.5, 0.5, 0.5, 0.5, 0.5},
		IsRadial: true,
		Units:    rasterx.ObjectBoundingBox,
		Matrix:   rasterx.Identity,
		Spread:   rasterx.PadSpread,
	}
	g.Bounds.X, g.Bounds.Y = center.X-rx, center.Y-ry
	g.Bounds.W, g.Bounds.H = 2*rx, 2*ry
	for _, st := range stops {
		c := st.Color
		g.Stops = append(g.Stops, rasterx.GradStop{
			StopColor: color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff},
			Offset:    st.Offset,
			Opacity:   float64(c.A) / 0xff,
		})
	}

	s.filler.Clear()
	s.filler.SetColor(g.GetColorFunction(1))
	rasterx.AddEllipse(center.X, center.Y, rx, ry, 0, s.filler)
	s.filler.Draw()
	s.Calls["blob"]++
}

// DrawStrokePath strokes an open polyline with round caps and joins.
func (s *Sink) DrawStrokePath(points []atmosphere.Point, width float64, clr color.NRGBA) {
	if len(points) < 2 || width <= 0 || clr.A == 0 {
		return
	}
	s.stroker.Clear()
	s.stroker.SetStroke(toFixed(width), toFixed(4), rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	s.stroker.SetColor(clr)
	s.stroker.Start(toPoint(points[0]))
	for _, p := range points[1:] {
		s.stroker.Line(toPoint(p))
	}
	s.stroker.Stop(false)
	s.stroker.Draw()
	s.Calls["stroke"]++
}

// DrawFilledEllipse fills an ellipse rotated by rotation radians.
func (s *Sink) DrawFilledEllipse(center atmosphere.Point, rx, ry, rotation float64, clr color.NRGBA) {
	if rx <= 0 || ry <= 0 || clr.A == 0 {
		return
	}
	s.filler.Clear()
	s.filler.SetColor(clr)
	// rasterx rotates in degrees.
	rasterx.AddEllipse(center.X, center.Y, rx, ry, rotation*180/math.Pi, s.filler)
	s.filler.Draw()
	s.Calls["ellipse"]++
}

// DrawFilledCircle fills a circle; glow adds a faint halo behind it.
func (s *Sink) DrawFilledCircle(center atmosphere.Point, r float64, clr color.NRGBA, glow bool) {
	if r <= 0 || clr.A == 0 {
		return
	}
	if glow {
		halo := clr
		s.DrawBlob(center, r*glowScale, r*glowScale, []atmosphere.GradientStop{
			{Offset: 0, Color: atmosphere.Scale(halo, glowOpacity)},
			{Offset: 1, Color: atmosphere.Scale(halo, 0)},
		})
	}
	s.filler.Clear()
	s.filler.SetColor(clr)
	rasterx.AddCircle(center.X, center.Y, r, s.filler)
	s.filler.Draw()
	s.Calls["circle"]++
}

// WritePNG encodes the canvas as PNG.
func (s *Sink) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to filename.
func (s *Sink) SavePNG(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	log.Printf("raster: wrote %s", filename)
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func toPoint(p atmosphere.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}

var _ atmosphere.RenderSink = (*Sink)(nil)
