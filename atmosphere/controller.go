// Package atmosphere stacks the particle layers of the current mode and
// paints them onto a RenderSink every tick.
package atmosphere

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"atmos/particle"
	"atmos/phase"
	"atmos/preset"
)

// ErrNoSurface is returned when the render loop is started without a sink.
var ErrNoSurface = errors.New("atmosphere: no drawing surface")

// ErrRunning is returned by Start while a loop is already running.
var ErrRunning = errors.New("atmosphere: loop already running")

// Parting ramps, per tick.
const (
	partingFadeRate = 0.008
	partingPartRate = 0.015
	// Layers fainter than this are not drawn.
	minVisibleFade = 0.01
	defaultWind    = 0.35
)

// LayerStats describes one live layer for debug overlays.
type LayerStats struct {
	Layer  preset.Layer
	Name   string
	Kind   particle.Kind
	Count  int
	Fade   float64
	Wraps  int
	Active bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPresets replaces the built-in preset table.
func WithPresets(set preset.Set) Option {
	return func(c *Controller) { c.presets = set.Clone() }
}

// WithSeed makes particle sampling deterministic.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.seed = seed
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMode sets the mode the first tick builds.
func WithMode(m phase.Mode) Option {
	return func(c *Controller) { c.pending, c.hasPending = m, true }
}

// WithWind sets the peak gust speed in px per tick. Zero disables wind.
func WithWind(strength float64) Option {
	return func(c *Controller) { c.windStrength = strength }
}

// WithLogger routes controller diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns one particle field per active layer. All methods are safe
// for concurrent use; mode changes and resizes take effect at the next tick.
type Controller struct {
	mu sync.Mutex

	presets preset.Set
	mode    phase.Mode
	built   bool

	pending    phase.Mode
	hasPending bool

	fields map[preset.Layer]*particle.Field
	order  []preset.Layer

	width, height float64

	seed         int64
	rng          *rand.Rand
	windStrength float64
	wind         *Wind

	parting      bool
	partingTicks float64
	partProgress float64
	partFade     float64

	frames  uint64
	scratch [2][]Point
	logger  *log.Logger

	loop *loopHandle
}

// New creates a controller in the landing phase of summer using the
// built-in presets.
func New(opts ...Option) *Controller {
	c := &Controller{
		presets:      preset.Default(),
		pending:      phase.Mode{Phase: phase.Landing, Season: phase.Summer},
		hasPending:   true,
		fields:       make(map[preset.Layer]*particle.Field),
		windStrength: defaultWind,
		partFade:     1,
		logger:       log.Default(),
	}
	c.seed = time.Now().UnixNano()
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(c.seed))
	}
	c.wind = NewWind(c.windStrength, c.seed)
	return c
}

// NewWithPresets validates set and creates a controller using it.
func NewWithPresets(set preset.Set, opts ...Option) (*Controller, error) {
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid presets: %w", err)
	}
	return New(append([]Option{WithPresets(set)}, opts...)...), nil
}

// SetMode queues m; the next tick applies it.
func (c *Controller) SetMode(m phase.Mode) {
	c.mu.Lock()
	c.pending, c.hasPending = m, true
	c.mu.Unlock()
}

// Follow applies a phase change reported by a phase.Controller listener. The
// transition phase also starts the cloud parting.
func (c *Controller) Follow(m phase.Mode) {
	c.SetMode(m)
	if m.Phase == phase.Transitioning {
		c.BeginPartingTransition()
	}
}

// Mode returns the mode of the live layers. A queued mode is not reported
// until a tick has applied it.
func (c *Controller) Mode() phase.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Resize updates the surface size. Layers that were waiting for a real size
// are populated now; live particles continue and only future recycles use
// the new bounds.
func (c *Controller) Resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	for _, l := range c.order {
		f := c.fields[l]
		f.Resize(width, height)
		if l == preset.LayerHero {
			f.SetParting(c.partProgress, c.partFade)
		}
	}
}

// Size returns the surface size last passed to Resize.
func (c *Controller) Size() (width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// BeginPartingTransition starts pushing the hero clouds aside and fading
// them out. Later calls do nothing.
func (c *Controller) BeginPartingTransition() {
	c.mu.Lock()
	c.parting = true
	c.mu.Unlock()
}

// Parting returns the parting progress (0..1) and the hero layer fade (1..0).
func (c *Controller) Parting() (progress, fade float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.partProgress, c.partFade
}

// Tick applies a queued mode, advances one nominal frame and draws.
func (c *Controller) Tick(sink RenderSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(1)
	if sink != nil {
		c.render(sink)
	}
}

// Advance applies a queued mode and moves every layer by step nominal frames.
func (c *Controller) Advance(step float64) {
	c.mu.Lock()
	c.advance(step)
	c.mu.Unlock()
}

// Render draws the current state onto sink without advancing.
func (c *Controller) Render(sink RenderSink) {
	c.mu.Lock()
	c.render(sink)
	c.mu.Unlock()
}

// Frames returns the number of advances performed on a non-empty surface.
func (c *Controller) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Particles returns a copy of the live particles of layer.
func (c *Controller) Particles(layer preset.Layer) []particle.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.fields[layer]
	if !ok {
		return nil
	}
	return append([]particle.State(nil), f.Particles()...)
}

// Stats describes the live layers back to front.
func (c *Controller) Stats() []LayerStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LayerStats, 0, len(c.order))
	for _, l := range c.order {
		f := c.fields[l]
		s := LayerStats{
			Layer:  l,
			Name:   f.Config().Name,
			Kind:   f.Kind(),
			Count:  f.Len(),
			Fade:   f.Fade(),
			Active: f.Populated(),
		}
		for _, p := range f.Particles() {
			s.Wraps += p.Wraps
		}
		out = append(out, s)
	}
	return out
}

func (c *Controller) advance(step float64) {
	c.applyPending()
	if c.width <= 0 || c.height <= 0 || step <= 0 {
		return
	}

	if c.parting {
		c.partingTicks += step
		c.partProgress = math.Min(1, c.partingTicks*partingPartRate)
		c.partFade = math.Max(0, 1-c.partingTicks*partingFadeRate)
	}

	wind := c.wind.Next(step)
	for _, l := range c.order {
		f := c.fields[l]
		if l == preset.LayerHero {
			f.SetParting(c.partProgress, c.partFade)
		}
		f.SetWind(wind)
		f.Advance(step)
	}
	c.frames++
}

func (c *Controller) applyPending() {
	if !c.hasPending {
		return
	}
	m := c.pending
	c.hasPending = false
	if c.built && m == c.mode {
		return
	}

	entries := c.presets.Layers(m)
	active := make(map[preset.Layer]bool, len(entries))
	order := make([]preset.Layer, 0, len(entries))
	for _, e := range entries {
		if err := c.applyLayer(e); err != nil {
			c.logger.Printf("atmosphere: %s layer disabled: %v", e.Layer, err)
			continue
		}
		active[e.Layer] = true
		order = append(order, e.Layer)
	}
	for l := range c.fields {
		if !active[l] {
			delete(c.fields, l)
		}
	}
	if !active[preset.LayerHero] {
		c.parting = false
		c.partingTicks = 0
		c.partProgress, c.partFade = 0, 1
	}
	c.order = order
	c.mode = m
	c.built = true
}

// applyLayer keeps a layer whose particle mix is unchanged and lets it ease
// toward cfg; any other change discards the layer and builds it anew.
func (c *Controller) applyLayer(e preset.Entry) error {
	f, ok := c.fields[e.Layer]
	if ok && f.Config().SameMix(e.Config) {
		return f.Retarget(e.Config)
	}
	f = particle.NewField(rand.New(rand.NewSource(c.rng.Int63())))
	if err := f.Populate(e.Config, c.width, c.height); err != nil {
		return err
	}
	if e.Layer == preset.LayerHero {
		f.SetParting(c.partProgress, c.partFade)
	}
	c.fields[e.Layer] = f
	return nil
}
