package particle

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Field owns the particles of one EmitterConfig and evolves them tick by tick.
// A Field is not safe for concurrent use; the atmosphere controller serialises
// access to it.
type Field struct {
	cfg       EmitterConfig
	hasConfig bool
	populated bool

	width  float64
	height float64

	particles []State
	rng       *rand.Rand

	wind float64 // px per tick, scaled by WindResponse
	part float64 // parting progress 0..1
	fade float64 // global layer alpha 1..0
}

// NewField creates an empty field. A nil rng seeds one from the clock.
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{rng: rng, fade: 1}
}

// Populate discards any existing particles and spawns cfg.Count new ones,
// spread across the whole surface so the first frame looks in progress.
// A zero-sized surface defers population until Resize reports a real size.
func (f *Field) Populate(cfg EmitterConfig, width, height float64) error {
	cfg, err := NewEmitterConfig(cfg)
	if err != nil {
		return err
	}
	f.cfg = cfg
	f.hasConfig = true
	f.width = width
	f.height = height
	f.part = 0
	f.fade = 1
	f.particles = nil
	f.populated = false

	if width <= 0 || height <= 0 {
		return nil
	}

	f.particles = make([]State, cfg.Count)
	for i := range f.particles {
		f.spawnInitial(&f.particles[i])
	}
	f.populated = true
	return nil
}

// Retarget swaps in a config with the same particle mix. Existing particles
// keep their sampled attributes and ease toward the new opacity scale and
// palette; future recycles sample from the new ranges.
func (f *Field) Retarget(cfg EmitterConfig) error {
	cfg, err := NewEmitterConfig(cfg)
	if err != nil {
		return err
	}
	if f.hasConfig && !f.cfg.SameMix(cfg) {
		return fmt.Errorf("%w: %s: retarget from %s x%d to %s x%d changes the particle mix",
			ErrInvalidConfig, cfg.Name, f.cfg.Kind, f.cfg.Count, cfg.Kind, cfg.Count)
	}
	f.cfg = cfg
	f.hasConfig = true
	if len(cfg.Palette) == 0 {
		return nil
	}
	for i := range f.particles {
		p := &f.particles[i]
		base := cfg.Palette[p.paletteIndex%len(cfg.Palette)]
		p.TargetColor = jitter(base, cfg.HueJitter, cfg.LightnessJitter, f.rng)
	}
	return nil
}

// Resize updates the surface bounds. An unpopulated field with a config is
// populated now; otherwise existing particles continue and only future
// recycles use the new bounds.
func (f *Field) Resize(width, height float64) {
	if f.hasConfig && !f.populated && width > 0 && height > 0 {
		// Populate only fails on an invalid config, which was already accepted.
		_ = f.Populate(f.cfg, width, height)
		return
	}
	f.width = width
	f.height = height
}

// SetWind sets the horizontal wind in pixels per tick.
func (f *Field) SetWind(w float64) {
	f.wind = w
}

// SetParting sets the parting progress and the global layer fade.
func (f *Field) SetParting(progress, fade float64) {
	f.part = math.Max(0, math.Min(1, progress))
	f.fade = math.Max(0, math.Min(1, fade))
}

// Fade returns the global alpha multiplier of the field.
func (f *Field) Fade() float64 { return f.fade }

// Config returns the active config.
func (f *Field) Config() EmitterConfig { return f.cfg }

// Kind returns the kind of every particle in the field.
func (f *Field) Kind() Kind { return f.cfg.Kind }

// Populated reports whether the field holds a live population.
func (f *Field) Populated() bool { return f.populated }

// Len returns the number of live particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles exposes the live particles. Callers must not modify them.
func (f *Field) Particles() []State { return f.particles }

// Size returns the surface bounds the field recycles against.
func (f *Field) Size() (width, height float64) { return f.width, f.height }

// Advance moves every particle by step nominal frames (1 = 1/60 s) and
// recycles the ones that crossed their trailing edge. It is a no-op on an
// unpopulated field or a zero-sized surface.
func (f *Field) Advance(step float64) {
	if !f.populated || f.width <= 0 || f.height <= 0 || step <= 0 {
		return
	}
	rate := easeRate(f.cfg.Smoothing, step)
	for i := range f.particles {
		p := &f.particles[i]
		switch f.cfg.Pattern {
		case PatternLinearFall:
			f.fall(p, step)
		case PatternSineCruise:
			f.cruise(p, step, false)
		case PatternFlapGlide:
			f.cruise(p, step, true)
		case PatternBreathing:
			f.breathe(p, step)
		}
		f.ease(p, rate)
		f.recycle(p)
		f.push(p)
	}
}

// InBounds reports whether p lies inside the region a live particle of this
// field may occupy: the surface plus the entry and exit margins.
func (f *Field) InBounds(p *State) bool {
	if f.exited(p) {
		return false
	}
	if f.cfg.Pattern.falls() {
		return p.Y >= f.entryTop()-1e-9
	}
	return true
}

// entryTop is the highest Y a falling particle can start from.
func (f *Field) entryTop() float64 {
	return math.Min(f.cfg.SpawnY.Min*f.height, -3*f.cfg.SizeRange.Max)
}

// currentTarget is the opacity a particle eases toward.
func (f *Field) currentTarget(p *State) float64 {
	t := p.BaseOpacity * f.cfg.OpacityScale * (1 - f.cfg.Dim)
	if f.cfg.Pattern == PatternBreathing {
		d := f.cfg.BreathDepth
		t *= 1 - d + d*math.Sin(p.WobblePhase)
	}
	return math.Max(0, math.Min(1, t))
}

// easeRate converts a per-frame smoothing rate to one covering step frames.
func easeRate(smoothing, step float64) float64 {
	if step == 1 {
		return smoothing
	}
	return 1 - math.Pow(1-smoothing, step)
}
