package atmosphere

import (
	perlin "github.com/aquilax/go-perlin"
)

const (
	windAlpha   = 2.0
	windBeta    = 2.0
	windOctaves = 3
	// Noise coordinate advance per tick; one gust cycle spans several seconds.
	windRate = 0.004
)

// Wind is a slowly varying horizontal breeze sampled from 1D Perlin noise.
type Wind struct {
	noise    *perlin.Perlin
	strength float64
	t        float64
}

// NewWind creates a breeze whose magnitude stays within roughly strength px
// per tick.
func NewWind(strength float64, seed int64) *Wind {
	return &Wind{
		noise:    perlin.NewPerlin(windAlpha, windBeta, windOctaves, seed),
		strength: strength,
	}
}

// Next advances the breeze by step ticks and returns its current speed.
func (w *Wind) Next(step float64) float64 {
	if w == nil || w.strength == 0 {
		return 0
	}
	w.t += step * windRate
	return w.noise.Noise1D(w.t) * w.strength
}
