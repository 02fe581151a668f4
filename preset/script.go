package preset

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/dop251/goja"
	"github.com/lucasb-eyer/go-colorful"

	"atmos/particle"
	"atmos/phase"
)

// ApplyScript evaluates a JavaScript preset script and returns a copy of s
// with its overrides applied. The script's completion value must be an object
// keyed by "hero" or by season name, each season holding layer objects:
//
//	({
//	  hero:   { count: 20 },
//	  winter: { precip: { count: 200, size: [2, 5], palette: ["#ffffff"] } },
//	})
//
// Ranges are given as [min, max] or a single number. Every touched config is
// validated again; the first failure is returned.
func (s Set) ApplyScript(src string) (Set, error) {
	vm := goja.New()
	if err := vm.Set("rgba", func(r, g, b int, a float64) []interface{} {
		return []interface{}{r, g, b, a}
	}); err != nil {
		return s, fmt.Errorf("failed to register rgba helper: %w", err)
	}

	v, err := vm.RunString(src)
	if err != nil {
		return s, fmt.Errorf("preset script failed: %w", err)
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return s, fmt.Errorf("preset script must evaluate to an object")
	}
	root, ok := v.Export().(map[string]interface{})
	if !ok {
		return s, fmt.Errorf("preset script must evaluate to an object, got %T", v.Export())
	}

	out := s.Clone()
	for key, raw := range root {
		fields, ok := raw.(map[string]interface{})
		if !ok {
			return s, fmt.Errorf("%s: expected object, got %T", key, raw)
		}
		if key == string(LayerHero) {
			cfg, err := override(out.Hero, fields)
			if err != nil {
				return s, fmt.Errorf("hero: %w", err)
			}
			out.Hero = cfg
			continue
		}

		season, ok := phase.ParseSeason(key)
		if !ok {
			return s, fmt.Errorf("unknown preset key %q", key)
		}
		for layerName, lraw := range fields {
			layer, err := ParseLayer(layerName)
			if err != nil || layer == LayerHero {
				return s, fmt.Errorf("%s: %w", season, ErrUnknownLayer)
			}
			lfields, ok := lraw.(map[string]interface{})
			if !ok {
				return s, fmt.Errorf("%s/%s: expected object, got %T", season, layer, lraw)
			}
			if out.Seasons[season] == nil {
				out.Seasons[season] = map[Layer]particle.EmitterConfig{}
			}
			cfg, err := override(out.Seasons[season][layer], lfields)
			if err != nil {
				return s, fmt.Errorf("%s/%s: %w", season, layer, err)
			}
			out.Seasons[season][layer] = cfg
		}
	}
	return out, nil
}

// LoadScript reads a preset script from path and applies it to s.
func (s Set) LoadScript(path string) (Set, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read preset script: %w", err)
	}
	out, err := s.ApplyScript(string(src))
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func override(cfg particle.EmitterConfig, fields map[string]interface{}) (particle.EmitterConfig, error) {
	ranges := map[string]*particle.Range{
		"size":          &cfg.SizeRange,
		"speedX":        &cfg.SpeedXRange,
		"speedY":        &cfg.SpeedYRange,
		"opacity":       &cfg.OpacityRange,
		"wobbleAmp":     &cfg.WobbleAmpRange,
		"wobbleSpeed":   &cfg.WobbleSpeedRange,
		"rotationSpeed": &cfg.RotationSpeedRange,
		"stretchX":      &cfg.StretchXRange,
		"stretchY":      &cfg.StretchYRange,
		"flapSpeed":     &cfg.FlapSpeedRange,
		"glideTicks":    &cfg.GlideTicksRange,
		"spawnX":        &cfg.SpawnX,
		"spawnY":        &cfg.SpawnY,
	}
	scalars := map[string]*float64{
		"hueJitter":       &cfg.HueJitter,
		"lightnessJitter": &cfg.LightnessJitter,
		"breathDepth":     &cfg.BreathDepth,
		"opacityScale":    &cfg.OpacityScale,
		"dim":             &cfg.Dim,
		"smoothing":       &cfg.Smoothing,
		"glideChance":     &cfg.GlideChance,
		"windResponse":    &cfg.WindResponse,
	}

	// Kind resets the pattern to the kind's default, so it goes first and an
	// explicit pattern in the same object always wins.
	if raw, ok := fields["kind"]; ok {
		name, _ := raw.(string)
		k, ok := particle.ParseKind(name)
		if !ok {
			return cfg, fmt.Errorf("kind: unknown %v", raw)
		}
		cfg.Kind = k
		cfg.Pattern = particle.PatternDefault
	}

	for key, raw := range fields {
		if r, ok := ranges[key]; ok {
			v, err := toRange(raw)
			if err != nil {
				return cfg, fmt.Errorf("%s: %w", key, err)
			}
			*r = v
			continue
		}
		if f, ok := scalars[key]; ok {
			v, ok := toFloat(raw)
			if !ok {
				return cfg, fmt.Errorf("%s: expected number, got %T", key, raw)
			}
			*f = v
			continue
		}

		switch key {
		case "name":
			name, ok := raw.(string)
			if !ok {
				return cfg, fmt.Errorf("name: expected string, got %T", raw)
			}
			cfg.Name = name
		case "count":
			v, ok := toFloat(raw)
			if !ok || v != math.Trunc(v) {
				return cfg, fmt.Errorf("count: expected integer, got %v", raw)
			}
			cfg.Count = int(v)
		case "kind":
		case "pattern":
			name, _ := raw.(string)
			p, ok := particle.ParsePattern(name)
			if !ok {
				return cfg, fmt.Errorf("pattern: unknown %v", raw)
			}
			cfg.Pattern = p
		case "palette":
			pal, err := toPalette(raw)
			if err != nil {
				return cfg, fmt.Errorf("palette: %w", err)
			}
			cfg.Palette = pal
		default:
			return cfg, fmt.Errorf("unknown field %q", key)
		}
	}
	return particle.NewEmitterConfig(cfg)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toRange(v interface{}) (particle.Range, error) {
	if f, ok := toFloat(v); ok {
		return particle.Fixed(f), nil
	}
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return particle.Range{}, fmt.Errorf("expected number or [min, max], got %v", v)
	}
	lo, ok1 := toFloat(arr[0])
	hi, ok2 := toFloat(arr[1])
	if !ok1 || !ok2 {
		return particle.Range{}, fmt.Errorf("expected numeric bounds, got %v", v)
	}
	// Bounds are not reordered; Validate reports min > max.
	return particle.Between(lo, hi), nil
}

func toPalette(v interface{}) ([]color.NRGBA, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]color.NRGBA, 0, len(arr))
	for i, entry := range arr {
		c, err := toColor(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// toColor accepts "#rrggbb" / "#rgb" strings or [r, g, b, a] arrays with a
// in 0..1.
func toColor(v interface{}) (color.NRGBA, error) {
	switch c := v.(type) {
	case string:
		hex, err := colorful.Hex(c)
		if err != nil {
			return color.NRGBA{}, err
		}
		r, g, b := hex.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case []interface{}:
		if len(c) != 3 && len(c) != 4 {
			return color.NRGBA{}, fmt.Errorf("expected [r, g, b] or [r, g, b, a], got %v", c)
		}
		var ch [4]float64
		ch[3] = 1
		for i, x := range c {
			f, ok := toFloat(x)
			if !ok {
				return color.NRGBA{}, fmt.Errorf("non-numeric channel %v", x)
			}
			ch[i] = f
		}
		for i := 0; i < 3; i++ {
			if ch[i] < 0 || ch[i] > 255 {
				return color.NRGBA{}, fmt.Errorf("channel %g outside 0..255", ch[i])
			}
		}
		if ch[3] < 0 || ch[3] > 1 {
			return color.NRGBA{}, fmt.Errorf("alpha %g outside 0..1", ch[3])
		}
		return color.NRGBA{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: uint8(math.Round(ch[3] * 255))}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("unsupported colour %T", v)
	}
}
