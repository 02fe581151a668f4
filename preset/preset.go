// Package preset holds the emitter tables for every atmosphere layer and
// season, and lets scripts override them.
package preset

import (
	"errors"
	"fmt"

	"atmos/particle"
	"atmos/phase"
)

// ErrUnknownLayer is returned for layer names that no preset defines.
var ErrUnknownLayer = errors.New("unknown layer")

// Layer names one stacked particle field of the atmosphere.
type Layer string

const (
	LayerMist   Layer = "mist"   // drifting fog bands over the map
	LayerBirds  Layer = "birds"  // birds crossing the map
	LayerPrecip Layer = "precip" // petals, motes, leaves or snow
	LayerHero   Layer = "hero"   // thick clouds over the landing hero
)

// drawOrder is the back-to-front stacking of layers.
var drawOrder = []Layer{LayerMist, LayerBirds, LayerPrecip, LayerHero}

// ParseLayer returns the layer with the given name.
func ParseLayer(name string) (Layer, error) {
	for _, l := range drawOrder {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// Entry binds a layer to the config it runs with in some mode.
type Entry struct {
	Layer  Layer
	Config particle.EmitterConfig
}

// Set is a complete preset table: the hero cloud bank plus one config per
// seasonal layer and season. Sets are values; Clone before mutating maps.
type Set struct {
	Hero    particle.EmitterConfig
	Seasons map[phase.Season]map[Layer]particle.EmitterConfig
}

// Layers returns the layers active in mode, back to front. The hero clouds
// cover the landing screen and stay up while they part; the seasonal layers
// run underneath from the transition on.
func (s Set) Layers(mode phase.Mode) []Entry {
	var out []Entry
	if mode.Phase != phase.Landing {
		seasonal := s.Seasons[mode.Season]
		for _, l := range drawOrder {
			if cfg, ok := seasonal[l]; ok {
				out = append(out, Entry{Layer: l, Config: cfg})
			}
		}
	}
	if mode.Phase != phase.Map {
		out = append(out, Entry{Layer: LayerHero, Config: s.Hero})
	}
	return out
}

// Config returns the config of layer in season. The hero layer ignores the season.
func (s Set) Config(season phase.Season, layer Layer) (particle.EmitterConfig, error) {
	if layer == LayerHero {
		return s.Hero, nil
	}
	cfg, ok := s.Seasons[season][layer]
	if !ok {
		return particle.EmitterConfig{}, fmt.Errorf("%w: %s in %s", ErrUnknownLayer, layer, season)
	}
	return cfg, nil
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	out := Set{Hero: cloneConfig(s.Hero), Seasons: make(map[phase.Season]map[Layer]particle.EmitterConfig, len(s.Seasons))}
	for season, layers := range s.Seasons {
		m := make(map[Layer]particle.EmitterConfig, len(layers))
		for l, cfg := range layers {
			m[l] = cloneConfig(cfg)
		}
		out.Seasons[season] = m
	}
	return out
}

// Validate checks every config in the set.
func (s Set) Validate() error {
	if err := s.Hero.Validate(); err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	for season, layers := range s.Seasons {
		for l, cfg := range layers {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s/%s: %w", season, l, err)
			}
		}
	}
	return nil
}

func cloneConfig(c particle.EmitterConfig) particle.EmitterConfig {
	c.Palette = append(c.Palette[:0:0], c.Palette...)
	return c
}
