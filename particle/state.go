package particle

import "image/color"

// State is one simulated element. Fields are exported so draw routines and
// tests can read them; only Field mutates them.
type State struct {
	X, Y float64 // surface pixels
	Size float64

	SpeedX float64
	SpeedY float64

	WobbleAmp   float64
	WobblePhase float64
	WobbleSpeed float64

	Rotation      float64
	RotationSpeed float64

	Opacity     float64 // current alpha, eased toward the target
	BaseOpacity float64 // sampled from the opacity range

	Kind Kind

	// Birds
	Baseline   float64
	FlapPhase  float64
	FlapSpeed  float64
	GlideTicks float64 // remaining glide time, 0 while flapping
	FlipY      bool

	// Wisps
	StretchX   float64
	StretchY   float64
	Side       Side
	PartOffset float64 // lateral push from a parting transition

	Color        color.NRGBA
	TargetColor  color.NRGBA
	paletteIndex int

	// Wraps counts how often the particle has been recycled.
	Wraps int
}

// Gliding reports whether a bird is currently gliding.
func (s *State) Gliding() bool {
	return s.GlideTicks > 0
}

// DrawX returns the horizontal draw position including any parting offset.
func (s *State) DrawX() float64 {
	return s.X + s.PartOffset
}

// Extent returns the half-width of the particle's visual footprint.
func (s *State) Extent() float64 {
	if s.Kind == KindWisp && s.StretchX > 0 {
		return s.Size * s.StretchX
	}
	return s.Size
}
