package raster

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"atmos/atmosphere"
	"atmos/phase"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func newSink(t *testing.T) *Sink {
	t.Helper()
	s, err := New(64, 64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func alphaAt(s *Sink, x, y int) uint8 {
	return s.Image().RGBAAt(x, y).A
}

func TestNewRejectsEmptySurface(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, atmosphere.ErrNoSurface) {
			t.Errorf("New(%d, %d): expected ErrNoSurface, got %v", size[0], size[1], err)
		}
	}
}

func TestDrawBlobFadesOut(t *testing.T) {
	s := newSink(t)
	s.Clear()
	s.DrawBlob(atmosphere.Point{X: 32, Y: 32}, 20, 10, []atmosphere.GradientStop{
		{Offset: 0, Color: white},
		{Offset: 1, Color: color.NRGBA{R: 255, G: 255, B: 255}},
	})
	center := alphaAt(s, 32, 32)
	if center == 0 {
		t.Fatal("Expected the blob centre to be painted")
	}
	if edge := alphaAt(s, 50, 32); edge >= center {
		t.Errorf("Expected the blob to fade toward its rim, centre %d edge %d", center, edge)
	}
	if outside := alphaAt(s, 32, 50); outside != 0 {
		t.Errorf("Expected nothing outside the blob, got alpha %d", outside)
	}
	if s.Calls["blob"] != 1 {
		t.Errorf("Expected 1 blob call, got %d", s.Calls["blob"])
	}
}

func TestDrawShapes(t *testing.T) {
	s := newSink(t)
	s.Clear()
	s.DrawFilledCircle(atmosphere.Point{X: 10, Y: 10}, 4, white, false)
	s.DrawFilledEllipse(atmosphere.Point{X: 40, Y: 10}, 8, 3, 0, white)
	s.DrawStrokePath([]atmosphere.Point{{X: 5, Y: 40}, {X: 55, Y: 40}}, 3, white)

	for _, p := range [][2]int{{10, 10}, {40, 10}, {30, 40}} {
		if alphaAt(s, p[0], p[1]) == 0 {
			t.Errorf("Expected pixel %v to be painted", p)
		}
	}
	// A flat ellipse leaves its minor axis ends clear.
	if alphaAt(s, 40, 18) != 0 {
		t.Error("Expected the ellipse to stay within its minor radius")
	}

	s.Clear()
	if alphaAt(s, 10, 10) != 0 {
		t.Error("Expected Clear to wipe the canvas")
	}
}

func TestSkipsInvisiblePrimitives(t *testing.T) {
	s := newSink(t)
	s.DrawFilledCircle(atmosphere.Point{X: 10, Y: 10}, 4, color.NRGBA{R: 255}, false)
	s.DrawFilledEllipse(atmosphere.Point{X: 10, Y: 10}, 0, 3, 0, white)
	s.DrawStrokePath([]atmosphere.Point{{X: 1, Y: 1}}, 2, white)
	s.DrawBlob(atmosphere.Point{X: 10, Y: 10}, 5, 5, nil)
	if len(s.Calls) != 0 {
		t.Errorf("Expected no primitives drawn, got %v", s.Calls)
	}
}

func TestGlowAddsHalo(t *testing.T) {
	s := newSink(t)
	s.Clear()
	s.DrawFilledCircle(atmosphere.Point{X: 32, Y: 32}, 4, white, true)
	if alphaAt(s, 32, 38) == 0 {
		t.Error("Expected the halo to reach past the circle")
	}
	if s.Calls["blob"] != 1 || s.Calls["circle"] != 1 {
		t.Errorf("Expected one halo blob and one circle, got %v", s.Calls)
	}
}

func TestRendersControllerFrame(t *testing.T) {
	s, err := New(320, 200)
	if err != nil {
		t.Fatal(err)
	}
	c := atmosphere.New(atmosphere.WithSeed(9), atmosphere.WithMode(phase.Mode{Phase: phase.Map, Season: phase.Winter}))
	c.Resize(320, 200)
	for i := 0; i < 3; i++ {
		c.Tick(s)
	}
	if s.Calls["clear"] != 3 {
		t.Errorf("Expected 3 clears, got %d", s.Calls["clear"])
	}
	if s.Calls["circle"] == 0 || s.Calls["blob"] == 0 {
		t.Errorf("Expected snow and mist to be drawn, got %v", s.Calls)
	}

	painted := 0
	b := s.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(s, x, y) != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("Expected the frame to paint some pixels")
	}

	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds() != b {
		t.Errorf("Expected bounds %v, got %v", b, img.Bounds())
	}
}

func TestSavePNG(t *testing.T) {
	s := newSink(t)
	s.DrawFilledCircle(atmosphere.Point{X: 32, Y: 32}, 6, white, false)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("Expected a non-empty PNG")
	}
	if err := s.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("Expected saving into a missing directory to fail")
	}
}
