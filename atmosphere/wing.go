package atmosphere

import (
	"log"
	"math"
	"sync"

	"github.com/srwiley/oksvg"
	"golang.org/x/image/math/fixed"
)

// Bird silhouette: two curved wings in a 40x20 view box meeting at (20, 10).
const (
	leftWingPath  = "M20 10 Q10 0 0 4"
	rightWingPath = "M20 10 Q30 0 40 4"
	wingViewBox   = 40.0
	wingOriginX   = 20.0
	wingOriginY   = 10.0
	wingStroke    = 1.8
	curveSegments = 8
)

var (
	wingOnce  sync.Once
	leftWing  []Point
	rightWing []Point
)

// wings returns the wing polylines in units of the bird's size, with the
// body at the origin.
func wings() (left, right []Point) {
	wingOnce.Do(func() {
		leftWing = compileWing(leftWingPath, []Point{{0, 0}, {-0.25, -0.2}, {-0.5, -0.15}})
		rightWing = compileWing(rightWingPath, []Point{{0, 0}, {0.25, -0.2}, {0.5, -0.15}})
	})
	return leftWing, rightWing
}

func compileWing(d string, fallback []Point) []Point {
	var pc oksvg.PathCursor
	if err := pc.CompilePath(d); err != nil {
		log.Printf("atmosphere: failed to compile wing path %q: %v", d, err)
		return fallback
	}
	var pl polyline
	pc.Path.AddTo(&pl)
	if len(pl.pts) < 2 {
		return fallback
	}
	for i := range pl.pts {
		pl.pts[i].X = (pl.pts[i].X - wingOriginX) / wingViewBox
		pl.pts[i].Y = (pl.pts[i].Y - wingOriginY) / wingViewBox
	}
	return pl.pts
}

// polyline flattens a rasterx path into points. It implements rasterx.Adder.
type polyline struct {
	pts   []Point
	start Point
	cur   Point
}

func fromFixed(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

func (pl *polyline) Start(a fixed.Point26_6) {
	pl.cur = fromFixed(a)
	pl.start = pl.cur
	pl.pts = append(pl.pts, pl.cur)
}

func (pl *polyline) Line(b fixed.Point26_6) {
	pl.cur = fromFixed(b)
	pl.pts = append(pl.pts, pl.cur)
}

func (pl *polyline) QuadBezier(b, c fixed.Point26_6) {
	p0, p1, p2 := pl.cur, fromFixed(b), fromFixed(c)
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		pl.pts = append(pl.pts, Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
	pl.cur = p2
}

func (pl *polyline) CubeBezier(b, c, d fixed.Point26_6) {
	p0, p1, p2, p3 := pl.cur, fromFixed(b), fromFixed(c), fromFixed(d)
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		pl.pts = append(pl.pts, Point{
			X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
			Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
		})
	}
	pl.cur = p3
}

func (pl *polyline) Stop(closeLoop bool) {
	if closeLoop && len(pl.pts) > 0 {
		pl.pts = append(pl.pts, pl.start)
		pl.cur = pl.start
	}
}

// wingPoints places one wing for a bird at c. flap scales the wing's vertical
// sweep; negative values fold the wing below the body.
func wingPoints(tmpl []Point, c Point, size, flap float64, flipY bool, dst []Point) []Point {
	dst = dst[:0]
	sy := flap
	if flipY {
		sy = -sy
	}
	for _, p := range tmpl {
		dst = append(dst, Point{X: c.X + p.X*size, Y: c.Y + p.Y*size*sy})
	}
	return dst
}

// flapFactor maps a wing phase to the vertical sweep: 1 with the wings fully
// raised, dipping through flat to -0.3 at the bottom of the downstroke.
func flapFactor(phase float64) float64 {
	return 0.35 + 0.65*math.Cos(phase)
}
