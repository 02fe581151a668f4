package phase

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// ErrInvalidTransition is returned when a phase change is not allowed from the
// current phase.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Hero dive animation. The landing hero scales up and fades out while the
// clouds part; once it has settled the controller moves on to the map.
const (
	heroTicksPerSecond = 60
	heroFrequency      = 2.75 // critically damped, settles in ~2.4s
	heroDamping        = 1.0
	heroDiveScale      = 1.12
	heroSettle         = 0.01
)

// Controller is the landing → transitioning → map state machine plus the
// season selector. It is safe for concurrent use; listeners run on the
// goroutine that caused the change, after the controller lock is released.
type Controller struct {
	mu        sync.Mutex
	mode      Mode
	listeners []func(Mode)

	spring            harmonica.Spring
	heroScale, scaleV float64
	heroAlpha, alphaV float64
}

// NewController starts in the landing phase with the given season.
func NewController(season Season) *Controller {
	return &Controller{
		mode:      Mode{Phase: Landing, Season: season},
		spring:    harmonica.NewSpring(harmonica.FPS(heroTicksPerSecond), heroFrequency, heroDamping),
		heroScale: 1,
		heroAlpha: 1,
	}
}

// Mode returns the current phase and season.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Subscribe registers fn to be called with the new mode after every change.
func (c *Controller) Subscribe(fn func(Mode)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Explore starts the hero-to-map transition.
func (c *Controller) Explore() error {
	return c.transition(Landing, Transitioning)
}

// Finish completes the transition and shows the map.
func (c *Controller) Finish() error {
	return c.transition(Transitioning, Map)
}

func (c *Controller) transition(from, to Phase) error {
	c.mu.Lock()
	if c.mode.Phase != from {
		cur := c.mode.Phase
		c.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, cur)
	}
	c.mode.Phase = to
	if to == Map {
		c.heroScale, c.scaleV = heroDiveScale, 0
		c.heroAlpha, c.alphaV = 0, 0
	}
	m, ls := c.mode, c.snapshot()
	c.mu.Unlock()
	notify(ls, m)
	return nil
}

// SetSeason switches to s. Setting the current season does nothing.
func (c *Controller) SetSeason(s Season) {
	c.mu.Lock()
	if c.mode.Season == s {
		c.mu.Unlock()
		return
	}
	c.mode.Season = s
	m, ls := c.mode, c.snapshot()
	c.mu.Unlock()
	notify(ls, m)
}

// CycleSeason advances to the next season and returns it.
func (c *Controller) CycleSeason() Season {
	next := c.Mode().Season.Next()
	c.SetSeason(next)
	return next
}

// Update advances the hero dive by one tick. When the dive has settled during
// the transition phase the controller finishes into the map phase.
func (c *Controller) Update() {
	c.mu.Lock()
	if c.mode.Phase != Transitioning {
		c.mu.Unlock()
		return
	}
	c.heroScale, c.scaleV = c.spring.Update(c.heroScale, c.scaleV, heroDiveScale)
	c.heroAlpha, c.alphaV = c.spring.Update(c.heroAlpha, c.alphaV, 0)
	settled := math.Abs(c.heroAlpha) < heroSettle && math.Abs(c.alphaV) < heroSettle
	c.mu.Unlock()

	if settled {
		// Another goroutine may have finished first; that is fine.
		_ = c.Finish()
	}
}

// Hero returns the landing hero's current scale and opacity.
func (c *Controller) Hero() (scale, alpha float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heroScale, math.Max(0, math.Min(1, c.heroAlpha))
}

func (c *Controller) snapshot() []func(Mode) {
	return append(([]func(Mode))(nil), c.listeners...)
}

func notify(ls []func(Mode), m Mode) {
	for _, fn := range ls {
		fn(m)
	}
}
