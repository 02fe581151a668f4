// Package term previews the atmosphere in a terminal. Every cell covers a
// block of virtual pixels; gradients tint the cell background and small
// particles become glyphs.
package term

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"atmos/atmosphere"
)

// Virtual pixels per cell. Terminal cells are roughly twice as tall as wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Sky behind every frame.
var sky = rgb{R: 24, G: 34, B: 48}

type rgb struct{ R, G, B float64 }

func (c rgb) blend(o color.NRGBA, a float64) rgb {
	return rgb{
		R: c.R + (float64(o.R)-c.R)*a,
		G: c.G + (float64(o.G)-c.G)*a,
		B: c.B + (float64(o.B)-c.B)*a,
	}
}

func (c rgb) tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

type cell struct {
	bg    rgb
	glyph rune
	fg    rgb
}

// Sink renders into a tcell screen. Present pushes the frame out.
type Sink struct {
	screen        tcell.Screen
	cols, rows    int
	cells         []cell
	ownsScreen    bool
	Width, Height float64
}

// Open creates and initializes a terminal screen.
func Open() (*Sink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: failed to init screen: %w", err)
	}
	s := New(screen)
	s.ownsScreen = true
	return s, nil
}

// New wraps an initialized screen.
func New(screen tcell.Screen) *Sink {
	s := &Sink{screen: screen}
	s.sync()
	return s
}

// Screen returns the underlying screen for event polling.
func (s *Sink) Screen() tcell.Screen { return s.screen }

// PixelSize returns the virtual pixel size of a cols x rows terminal.
func PixelSize(cols, rows int) (width, height float64) {
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// Close restores the terminal if Open created the screen.
func (s *Sink) Close() {
	if s.ownsScreen {
		s.screen.Fini()
	}
}

// sync picks up a terminal resize.
func (s *Sink) sync() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows && s.cells != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
	s.Width, s.Height = PixelSize(cols, rows)
}

// Clear resets every cell to the sky.
func (s *Sink) Clear() {
	s.sync()
	for i := range s.cells {
		s.cells[i] = cell{bg: sky}
	}
}

// DrawBlob tints the background of the cells under the ellipse.
func (s *Sink) DrawBlob(center atmosphere.Point, rx, ry float64, stops []atmosphere.GradientStop) {
	if rx <= 0 || ry <= 0 || len(stops) == 0 {
		return
	}
	s.eachCell(center, rx, ry, func(c *cell, px, py float64) {
		dx, dy := (px-center.X)/rx, (py-center.Y)/ry
		d := math.Sqrt(dx*dx + dy*dy)
		if d > 1 {
			return
		}
		clr := sampleStops(stops, d)
		c.bg = c.bg.blend(clr, float64(clr.A)/0xff)
	})
}

// DrawStrokePath places slope glyphs along the path.
func (s *Sink) DrawStrokePath(points []atmosphere.Point, width float64, clr color.NRGBA) {
	if len(points) < 2 || clr.A == 0 {
		return
	}
	a := float64(clr.A) / 0xff
	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		g := slopeGlyph(p1.X-p0.X, p1.Y-p0.Y)
		mid := atmosphere.Point{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2}
		if c := s.at(mid); c != nil {
			c.glyph = g
			c.fg = c.bg.blend(clr, math.Max(a, 0.5))
		}
	}
}

// DrawFilledEllipse marks the cell under the centre with a leaf glyph.
func (s *Sink) DrawFilledEllipse(center atmosphere.Point, rx, ry, rotation float64, clr color.NRGBA) {
	if clr.A == 0 {
		return
	}
	if c := s.at(center); c != nil {
		c.glyph = ','
		if math.Abs(math.Sin(rotation)) > 0.7 {
			c.glyph = '\''
		}
		c.fg = c.bg.blend(clr, float64(clr.A)/0xff)
	}
}

// DrawFilledCircle marks the cell under the centre; glow also lifts the
// cell background.
func (s *Sink) DrawFilledCircle(center atmosphere.Point, r float64, clr color.NRGBA, glow bool) {
	if clr.A == 0 {
		return
	}
	c := s.at(center)
	if c == nil {
		return
	}
	a := float64(clr.A) / 0xff
	c.glyph = '.'
	if glow {
		c.glyph = '*'
		c.bg = c.bg.blend(clr, a*0.15)
	}
	c.fg = c.bg.blend(clr, a)
}

// Present writes the buffered cells to the screen.
func (s *Sink) Present() {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			st := tcell.StyleDefault.Background(c.bg.tcell())
			g := ' '
			if c.glyph != 0 {
				g = c.glyph
				st = st.Foreground(c.fg.tcell())
			}
			s.screen.SetContent(x, y, g, nil, st)
		}
	}
	s.screen.Show()
}

func (s *Sink) at(p atmosphere.Point) *cell {
	x, y := int(p.X)/CellWidth, int(p.Y)/CellHeight
	if p.X < 0 || p.Y < 0 || x >= s.cols || y >= s.rows {
		return nil
	}
	return &s.cells[y*s.cols+x]
}

// eachCell visits the cells whose centres fall inside the box around center.
func (s *Sink) eachCell(center atmosphere.Point, rx, ry float64, fn func(c *cell, px, py float64)) {
	x0 := int(math.Max(0, math.Floor((center.X-rx)/CellWidth)))
	x1 := int(math.Min(float64(s.cols-1), math.Floor((center.X+rx)/CellWidth)))
	y0 := int(math.Max(0, math.Floor((center.Y-ry)/CellHeight)))
	y1 := int(math.Min(float64(s.rows-1), math.Floor((center.Y+ry)/CellHeight)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fn(&s.cells[y*s.cols+x], (float64(x)+0.5)*CellWidth, (float64(y)+0.5)*CellHeight)
		}
	}
}

func sampleStops(stops []atmosphere.GradientStop, d float64) color.NRGBA {
	if d <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if d <= b.Offset {
			t := 0.0
			if b.Offset > a.Offset {
				t = (d - a.Offset) / (b.Offset - a.Offset)
			}
			return color.NRGBA{
				R: lerp8(a.Color.R, b.Color.R, t),
				G: lerp8(a.Color.G, b.Color.G, t),
				B: lerp8(a.Color.B, b.Color.B, t),
				A: lerp8(a.Color.A, b.Color.A, t),
			}
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func slopeGlyph(dx, dy float64) rune {
	switch {
	case math.Abs(dy) < math.Abs(dx)*0.4:
		return '-'
	case dx*dy < 0:
		return '/'
	default:
		return '\\'
	}
}

var _ atmosphere.RenderSink = (*Sink)(nil)
var _ atmosphere.Presenter = (*Sink)(nil)
