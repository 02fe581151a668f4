package particle

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

// ErrInvalidConfig is returned when an EmitterConfig fails validation.
var ErrInvalidConfig = errors.New("invalid emitter config")

// DefaultSmoothing is the per-tick exponential smoothing rate used when a
// config leaves Smoothing unset. At 60 ticks per second it closes 99% of the
// gap to a new target in about 1.8 seconds.
const DefaultSmoothing = 0.0417

// Range is an inclusive [Min, Max] interval sampled uniformly.
type Range struct {
	Min float64
	Max float64
}

// Between returns the range [min, max].
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Fixed returns a range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample draws a value uniformly from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max == r.Min {
		return r.Min
	}
	v := r.Min + rng.Float64()*(r.Max-r.Min)
	if v > r.Max {
		v = r.Max
	}
	return v
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min <= r.Max
}

// EmitterConfig is the statistical envelope of one class of effect.
// Configs are values; once validated they are shared freely between fields.
type EmitterConfig struct {
	Name    string
	Kind    Kind
	Pattern Pattern

	// Count is the steady-state population
	Count int

	SizeRange    Range // radius or length in pixels
	SpeedXRange  Range // px per tick along X
	SpeedYRange  Range // px per tick along Y
	OpacityRange Range // base alpha, 0..1

	// WobbleAmpRange is the lateral wobble amplitude for falling kinds, the
	// cruise wave amplitude for birds, and the vertical nudge for wisps.
	WobbleAmpRange Range
	// WobbleSpeedRange is the phase advance per tick. For cruising kinds it is
	// the spatial frequency of the wave in radians per pixel.
	WobbleSpeedRange Range

	RotationSpeedRange Range // radians per tick
	StretchXRange      Range // wisp horizontal stretch
	StretchYRange      Range // wisp vertical stretch
	FlapSpeedRange     Range // wing phase advance per tick

	// Palette is sampled uniformly at spawn.
	Palette []color.NRGBA
	// HueJitter shifts the sampled hue by up to ± this many degrees.
	HueJitter float64
	// LightnessJitter shifts the sampled HSL lightness by up to ± this amount.
	LightnessJitter float64

	// SpawnX and SpawnY are fractions of the surface eligible for initial
	// placement. SpawnY may start below zero so falling kinds enter staggered.
	SpawnX Range
	SpawnY Range

	// BreathDepth is the opacity swing of the breathing pattern.
	BreathDepth float64
	// OpacityScale multiplies every particle's base opacity. Seasonal presets
	// move it to thicken or thin a layer without repopulating.
	OpacityScale float64
	// Dim removes this fraction of the layer's opacity; 1 hides it.
	Dim float64
	// Smoothing is the exponential easing rate for opacity and colour, in (0, 1].
	Smoothing float64

	// GlideChance is the per-tick probability a flapping bird starts gliding.
	GlideChance     float64
	GlideTicksRange Range

	// WindResponse scales the global wind applied to falling kinds.
	WindResponse float64
}

// NewEmitterConfig fills defaults and validates c.
func NewEmitterConfig(c EmitterConfig) (EmitterConfig, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return EmitterConfig{}, err
	}
	return c, nil
}

// MustConfig is like NewEmitterConfig but panics on an invalid config.
// It is meant for static preset tables.
func MustConfig(c EmitterConfig) EmitterConfig {
	c, err := NewEmitterConfig(c)
	if err != nil {
		panic(err)
	}
	return c
}

func (c EmitterConfig) withDefaults() EmitterConfig {
	if c.Pattern == PatternDefault {
		c.Pattern = DefaultPattern(c.Kind)
	}
	if c.Smoothing == 0 {
		c.Smoothing = DefaultSmoothing
	}
	if c.OpacityScale == 0 {
		c.OpacityScale = 1
	}
	if c.SpawnX == (Range{}) {
		c.SpawnX = Between(0, 1)
	}
	if c.SpawnY == (Range{}) {
		c.SpawnY = Between(0, 1)
	}
	return c
}

// Validate checks every range and scalar of the config. Nothing is clamped:
// the first problem found is reported.
func (c EmitterConfig) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: %s: unknown kind %d", ErrInvalidConfig, c.Name, c.Kind)
	}
	if c.Pattern <= PatternDefault || c.Pattern > PatternFlapGlide {
		return fmt.Errorf("%w: %s: unknown pattern %d", ErrInvalidConfig, c.Name, c.Pattern)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: %s: negative count %d", ErrInvalidConfig, c.Name, c.Count)
	}

	ranges := []struct {
		field string
		r     Range
	}{
		{"size", c.SizeRange},
		{"speedX", c.SpeedXRange},
		{"speedY", c.SpeedYRange},
		{"opacity", c.OpacityRange},
		{"wobbleAmp", c.WobbleAmpRange},
		{"wobbleSpeed", c.WobbleSpeedRange},
		{"rotationSpeed", c.RotationSpeedRange},
		{"stretchX", c.StretchXRange},
		{"stretchY", c.StretchYRange},
		{"flapSpeed", c.FlapSpeedRange},
		{"glideTicks", c.GlideTicksRange},
		{"spawnX", c.SpawnX},
		{"spawnY", c.SpawnY},
	}
	for _, rr := range ranges {
		if !rr.r.valid() {
			return fmt.Errorf("%w: %s: %s range min %g > max %g", ErrInvalidConfig, c.Name, rr.field, rr.r.Min, rr.r.Max)
		}
	}

	if c.SizeRange.Min < 0 {
		return fmt.Errorf("%w: %s: negative size %g", ErrInvalidConfig, c.Name, c.SizeRange.Min)
	}
	if c.OpacityRange.Min < 0 || c.OpacityRange.Max > 1 {
		return fmt.Errorf("%w: %s: opacity range [%g, %g] outside [0, 1]", ErrInvalidConfig, c.Name, c.OpacityRange.Min, c.OpacityRange.Max)
	}
	if c.OpacityScale < 0 {
		return fmt.Errorf("%w: %s: negative opacity scale %g", ErrInvalidConfig, c.Name, c.OpacityScale)
	}
	if c.Dim < 0 || c.Dim > 1 {
		return fmt.Errorf("%w: %s: dim %g outside [0, 1]", ErrInvalidConfig, c.Name, c.Dim)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("%w: %s: smoothing %g outside (0, 1]", ErrInvalidConfig, c.Name, c.Smoothing)
	}
	if c.BreathDepth < 0 || c.BreathDepth > 1 {
		return fmt.Errorf("%w: %s: breath depth %g outside [0, 1]", ErrInvalidConfig, c.Name, c.BreathDepth)
	}
	if c.GlideChance < 0 || c.GlideChance > 1 {
		return fmt.Errorf("%w: %s: glide chance %g outside [0, 1]", ErrInvalidConfig, c.Name, c.GlideChance)
	}
	if c.HueJitter < 0 || c.LightnessJitter < 0 {
		return fmt.Errorf("%w: %s: negative colour jitter", ErrInvalidConfig, c.Name)
	}
	if c.Count > 0 && len(c.Palette) == 0 {
		return fmt.Errorf("%w: %s: empty palette", ErrInvalidConfig, c.Name)
	}
	return nil
}

// SameMix reports whether swapping from c to other keeps the particle mix,
// in which case existing particles can ease to the new targets instead of
// being repopulated.
func (c EmitterConfig) SameMix(other EmitterConfig) bool {
	return c.Kind == other.Kind && c.Pattern == other.Pattern && c.Count == other.Count
}
