package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"atmos/atmosphere"
	"atmos/phase"
)

func newSimSink(t *testing.T, cols, rows int) (*Sink, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return New(screen), screen
}

func glyphAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestPixelSize(t *testing.T) {
	w, h := PixelSize(80, 24)
	if w != 640 || h != 384 {
		t.Errorf("Expected 640x384, got %gx%g", w, h)
	}
}

func TestGlyphs(t *testing.T) {
	s, screen := newSimSink(t, 20, 10)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	s.Clear()
	s.DrawFilledCircle(atmosphere.Point{X: 4, Y: 8}, 2, white, false)
	s.DrawFilledCircle(atmosphere.Point{X: 12, Y: 8}, 4, white, true)
	s.DrawFilledEllipse(atmosphere.Point{X: 20, Y: 8}, 5, 2, 0, white)
	s.DrawFilledEllipse(atmosphere.Point{X: 28, Y: 8}, 5, 2, 1.5, white)
	s.DrawStrokePath([]atmosphere.Point{{X: 32, Y: 40}, {X: 48, Y: 40}}, 1, white)
	s.DrawStrokePath([]atmosphere.Point{{X: 64, Y: 64}, {X: 80, Y: 32}}, 1, white)
	s.Present()

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '.'},
		{1, 0, '*'},
		{2, 0, ','},
		{3, 0, '\''},
		{5, 2, '-'},
		{9, 3, '/'},
		{10, 5, ' '},
	}
	for _, tt := range tests {
		if got := glyphAt(screen, tt.x, tt.y); got != tt.want {
			t.Errorf("cell (%d, %d): expected %q, got %q", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestBlobTintsBackground(t *testing.T) {
	s, screen := newSimSink(t, 20, 10)
	s.Clear()
	s.DrawBlob(atmosphere.Point{X: 80, Y: 80}, 40, 40, []atmosphere.GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{Offset: 1, Color: color.NRGBA{R: 255, G: 255, B: 255}},
	})
	s.Present()

	_, _, inside, _ := screen.GetContent(10, 5)
	_, _, outside, _ := screen.GetContent(0, 0)
	_, inBg, _ := inside.Decompose()
	_, outBg, _ := outside.Decompose()
	if inBg == outBg {
		t.Error("Expected the blob to tint the cells under it")
	}
	if outBg != sky.tcell() {
		t.Errorf("Expected untouched cells to show the sky, got %v", outBg)
	}
}

func TestOffscreenIgnored(t *testing.T) {
	s, _ := newSimSink(t, 4, 4)
	s.Clear()
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	s.DrawFilledCircle(atmosphere.Point{X: -5, Y: 3}, 2, white, false)
	s.DrawFilledCircle(atmosphere.Point{X: 500, Y: 3}, 2, white, false)
	s.DrawBlob(atmosphere.Point{X: -100, Y: -100}, 10, 10, []atmosphere.GradientStop{{Color: white}})
	for i, c := range s.cells {
		if c.glyph != 0 || c.bg != sky {
			t.Fatalf("cell %d changed: %+v", i, c)
		}
	}
}

func TestFollowsResize(t *testing.T) {
	s, screen := newSimSink(t, 10, 5)
	if s.Width != 80 || s.Height != 80 {
		t.Fatalf("Expected 80x80 virtual pixels, got %gx%g", s.Width, s.Height)
	}
	screen.SetSize(20, 8)
	s.Clear()
	if s.Width != 160 || s.Height != 128 || len(s.cells) != 160 {
		t.Errorf("Expected the sink to pick up 20x8, got %gx%g with %d cells", s.Width, s.Height, len(s.cells))
	}
}

func TestRendersControllerFrame(t *testing.T) {
	s, screen := newSimSink(t, 40, 12)
	c := atmosphere.New(atmosphere.WithSeed(5), atmosphere.WithMode(phase.Mode{Phase: phase.Map, Season: phase.Winter}))
	c.Resize(PixelSize(screen.Size()))
	c.Tick(s)

	flakes := 0
	for y := 0; y < 12; y++ {
		for x := 0; x < 40; x++ {
			if g := glyphAt(screen, x, y); g == '.' || g == '*' {
				flakes++
			}
		}
	}
	if flakes == 0 {
		t.Error("Expected snowflakes on screen")
	}
}
