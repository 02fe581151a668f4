// Package ebitensink paints atmosphere frames onto an ebiten image.
package ebitensink

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"atmos/atmosphere"
	"atmos/sink/raster"
)

// Sprite sizes for the baked gradient and disc.
const (
	blobSprite = 128
	discSprite = 64
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Sink draws onto the image set by SetTarget. Gradients and ellipses are
// baked once into white sprites with the raster sink and tinted per draw.
type Sink struct {
	dst   *ebiten.Image
	blobs map[profile]*ebiten.Image
	disc  *ebiten.Image
	op    ebiten.DrawImageOptions
}

// profile is a gradient's alpha falloff relative to its centre stop.
type profile [4]uint8

// New creates a sink with no target; Draw calls are dropped until SetTarget.
func New() *Sink {
	return &Sink{blobs: make(map[profile]*ebiten.Image)}
}

// SetTarget selects the image to draw on, normally the screen passed to
// ebiten's Draw.
func (s *Sink) SetTarget(dst *ebiten.Image) { s.dst = dst }

// Clear wipes the target.
func (s *Sink) Clear() {
	if s.dst != nil {
		s.dst.Clear()
	}
}

// DrawBlob draws the gradient sprite matching stops, scaled to the ellipse
// and tinted with the centre colour.
func (s *Sink) DrawBlob(center atmosphere.Point, rx, ry float64, stops []atmosphere.GradientStop) {
	if s.dst == nil || rx <= 0 || ry <= 0 || len(stops) == 0 || stops[0].Color.A == 0 {
		return
	}
	img := s.blob(stops)
	if img == nil {
		return
	}
	s.op.GeoM.Reset()
	s.op.ColorScale.Reset()
	s.op.GeoM.Translate(-blobSprite/2, -blobSprite/2)
	s.op.GeoM.Scale(2*rx/blobSprite, 2*ry/blobSprite)
	s.op.GeoM.Translate(center.X, center.Y)
	s.op.ColorScale.ScaleWithColor(stops[0].Color)
	s.op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, &s.op)
}

// DrawStrokePath strokes each segment and rounds the joints.
func (s *Sink) DrawStrokePath(points []atmosphere.Point, width float64, clr color.NRGBA) {
	if s.dst == nil || len(points) < 2 || clr.A == 0 {
		return
	}
	w := float32(width)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, clr, true)
	}
	if width > 1.5 {
		for _, p := range []atmosphere.Point{points[0], points[len(points)-1]} {
			vector.DrawFilledCircle(s.dst, float32(p.X), float32(p.Y), w/2, clr, true)
		}
	}
}

// DrawFilledEllipse draws the disc sprite squashed, rotated and tinted.
func (s *Sink) DrawFilledEllipse(center atmosphere.Point, rx, ry, rotation float64, clr color.NRGBA) {
	if s.dst == nil || rx <= 0 || ry <= 0 || clr.A == 0 {
		return
	}
	disc := s.discImage()
	if disc == nil {
		return
	}
	s.op.GeoM.Reset()
	s.op.ColorScale.Reset()
	s.op.GeoM.Translate(-discSprite/2, -discSprite/2)
	s.op.GeoM.Scale(2*rx/discSprite, 2*ry/discSprite)
	s.op.GeoM.Rotate(rotation)
	s.op.GeoM.Translate(center.X, center.Y)
	s.op.ColorScale.ScaleWithColor(clr)
	s.op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(disc, &s.op)
}

// DrawFilledCircle fills a circle; glow draws a soft halo first.
func (s *Sink) DrawFilledCircle(center atmosphere.Point, r float64, clr color.NRGBA, glow bool) {
	if s.dst == nil || r <= 0 || clr.A == 0 {
		return
	}
	if glow {
		s.DrawBlob(center, r*2.2, r*2.2, []atmosphere.GradientStop{
			{Offset: 0, Color: atmosphere.Scale(clr, 0.35)},
			{Offset: 1, Color: atmosphere.Scale(clr, 0)},
		})
	}
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(r), clr, true)
}

func (s *Sink) blob(stops []atmosphere.GradientStop) *ebiten.Image {
	key := profileOf(stops)
	if img, ok := s.blobs[key]; ok {
		return img
	}
	rs, err := raster.New(blobSprite, blobSprite)
	if err != nil {
		log.Printf("ebitensink: failed to bake gradient: %v", err)
		return nil
	}
	base := float64(stops[0].Color.A)
	shape := make([]atmosphere.GradientStop, len(stops))
	for i, st := range stops {
		shape[i] = atmosphere.GradientStop{Offset: st.Offset, Color: atmosphere.Scale(white, float64(st.Color.A)/base)}
	}
	rs.DrawBlob(atmosphere.Point{X: blobSprite / 2, Y: blobSprite / 2}, blobSprite/2, blobSprite/2, shape)
	img := ebiten.NewImageFromImage(rs.Image())
	s.blobs[key] = img
	return img
}

func (s *Sink) discImage() *ebiten.Image {
	if s.disc != nil {
		return s.disc
	}
	rs, err := raster.New(discSprite, discSprite)
	if err != nil {
		log.Printf("ebitensink: failed to bake disc: %v", err)
		return nil
	}
	rs.DrawFilledCircle(atmosphere.Point{X: discSprite / 2, Y: discSprite / 2}, discSprite/2, white, false)
	s.disc = ebiten.NewImageFromImage(rs.Image())
	return s.disc
}

// profileOf quantizes the falloff so particles of one layer share a sprite.
func profileOf(stops []atmosphere.GradientStop) profile {
	var p profile
	base := float64(stops[0].Color.A)
	for i := 0; i < len(p) && i < len(stops); i++ {
		p[i] = uint8(math.Round(float64(stops[i].Color.A) / base * 20))
	}
	return p
}

var _ atmosphere.RenderSink = (*Sink)(nil)
