package particle

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/crazy3lf/colorconv"
)

func TestJitterKeepsAlphaAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	base := color.NRGBA{R: 170, G: 100, B: 35, A: 200}
	_, _, baseL := colorconv.RGBToHSL(base.R, base.G, base.B)
	for i := 0; i < 500; i++ {
		c := jitter(base, 8, 0.05, rng)
		if c.A != base.A {
			t.Fatalf("Expected alpha %d, got %d", base.A, c.A)
		}
		_, _, l := colorconv.RGBToHSL(c.R, c.G, c.B)
		if l < baseL-0.06 || l > baseL+0.06 {
			t.Fatalf("Lightness %g drifted too far from %g", l, baseL)
		}
	}
	if c := jitter(base, 0, 0, rng); c != base {
		t.Errorf("Expected no jitter to return the base colour, got %v", c)
	}
}

func TestEaseColorReachesTarget(t *testing.T) {
	from := color.NRGBA{R: 220, G: 230, B: 240, A: 255}
	to := color.NRGBA{R: 200, G: 210, B: 195, A: 128}
	c := from
	for i := 0; i < 2000 && c != to; i++ {
		c = easeColor(c, to, DefaultSmoothing)
	}
	if c != to {
		t.Errorf("Expected easing to land on %v, got %v", to, c)
	}
}
