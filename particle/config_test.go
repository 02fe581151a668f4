package particle

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"
)

var testPalette = []color.NRGBA{{R: 255, G: 255, B: 255, A: 255}, {R: 200, G: 210, B: 230, A: 255}}

func snowConfig(count int) EmitterConfig {
	return EmitterConfig{
		Name:             "test-snow",
		Kind:             KindSnowflake,
		Count:            count,
		SizeRange:        Between(1.5, 4.5),
		SpeedYRange:      Between(0.5, 1.5),
		OpacityRange:     Between(0.4, 0.9),
		WobbleAmpRange:   Between(0.2, 0.7),
		WobbleSpeedRange: Between(0.01, 0.04),
		Palette:          testPalette,
		SpawnY:           Between(-0.25, 1),
	}
}

func TestRangeSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Between(-2, 3)
	for i := 0; i < 10000; i++ {
		if v := r.Sample(rng); !r.Contains(v) {
			t.Fatalf("Sample %d = %g, outside [%g, %g]", i, v, r.Min, r.Max)
		}
	}
	if v := Fixed(7).Sample(rng); v != 7 {
		t.Errorf("Expected fixed range to sample 7, got %g", v)
	}
}

func TestNewEmitterConfigDefaults(t *testing.T) {
	cfg, err := NewEmitterConfig(EmitterConfig{Kind: KindBird, Count: 1, Palette: testPalette})
	if err != nil {
		t.Fatalf("NewEmitterConfig: %v", err)
	}
	if cfg.Pattern != PatternFlapGlide {
		t.Errorf("Expected birds to default to %s, got %s", PatternFlapGlide, cfg.Pattern)
	}
	if cfg.Smoothing != DefaultSmoothing {
		t.Errorf("Expected smoothing %g, got %g", DefaultSmoothing, cfg.Smoothing)
	}
	if cfg.OpacityScale != 1 {
		t.Errorf("Expected opacity scale 1, got %g", cfg.OpacityScale)
	}
	if cfg.SpawnX != Between(0, 1) || cfg.SpawnY != Between(0, 1) {
		t.Errorf("Expected full spawn region, got %v / %v", cfg.SpawnX, cfg.SpawnY)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EmitterConfig)
	}{
		{"inverted size", func(c *EmitterConfig) { c.SizeRange = Between(5, 1) }},
		{"inverted speed", func(c *EmitterConfig) { c.SpeedYRange = Between(2, -2) }},
		{"negative count", func(c *EmitterConfig) { c.Count = -1 }},
		{"negative size", func(c *EmitterConfig) { c.SizeRange = Between(-1, 2) }},
		{"opacity above one", func(c *EmitterConfig) { c.OpacityRange = Between(0.5, 1.5) }},
		{"unknown kind", func(c *EmitterConfig) { c.Kind = Kind(99) }},
		{"unknown pattern", func(c *EmitterConfig) { c.Pattern = Pattern(99) }},
		{"smoothing above one", func(c *EmitterConfig) { c.Smoothing = 1.5 }},
		{"dim above one", func(c *EmitterConfig) { c.Dim = 2 }},
		{"empty palette", func(c *EmitterConfig) { c.Palette = nil }},
		{"negative jitter", func(c *EmitterConfig) { c.HueJitter = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := snowConfig(10)
			tt.mutate(&cfg)
			_, err := NewEmitterConfig(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateAllowsEmptyPaletteWithoutParticles(t *testing.T) {
	cfg := snowConfig(0)
	cfg.Palette = nil
	if _, err := NewEmitterConfig(cfg); err != nil {
		t.Errorf("Expected count 0 without palette to be valid, got %v", err)
	}
}

func TestSameMix(t *testing.T) {
	a := MustConfig(snowConfig(10))
	b := a
	b.OpacityScale = 0.3
	b.Palette = []color.NRGBA{{R: 1, G: 2, B: 3, A: 255}}
	if !a.SameMix(b) {
		t.Error("Expected configs differing only in tint and scale to share a mix")
	}
	b.Count = 11
	if a.SameMix(b) {
		t.Error("Expected a count change to change the mix")
	}
	c := a
	c.Kind = KindLeaf
	if a.SameMix(c) {
		t.Error("Expected a kind change to change the mix")
	}
}

func TestParseKindAndPattern(t *testing.T) {
	for _, k := range []Kind{KindMote, KindLeaf, KindSnowflake, KindPetal, KindBird, KindWisp} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("comet"); ok {
		t.Error("Expected unknown kind to fail")
	}
	for _, p := range []Pattern{PatternLinearFall, PatternSineCruise, PatternBreathing, PatternFlapGlide} {
		got, ok := ParsePattern(p.String())
		if !ok || got != p {
			t.Errorf("ParsePattern(%q) = %v, %v", p.String(), got, ok)
		}
	}
}
