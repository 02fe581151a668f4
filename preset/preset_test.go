package preset

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atmos/particle"
	"atmos/phase"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Expected built-in presets to validate, got %v", err)
	}
}

func TestDefaultSeasonMixes(t *testing.T) {
	tests := []struct {
		season phase.Season
		kind   particle.Kind
		count  int
	}{
		{phase.Spring, particle.KindPetal, 40},
		{phase.Summer, particle.KindMote, 30},
		{phase.Autumn, particle.KindLeaf, 25},
		{phase.Winter, particle.KindSnowflake, 120},
	}
	set := Default()
	for _, tt := range tests {
		cfg, err := set.Config(tt.season, LayerPrecip)
		if err != nil {
			t.Fatalf("%s: %v", tt.season, err)
		}
		if cfg.Kind != tt.kind || cfg.Count != tt.count {
			t.Errorf("%s precip: expected %s x%d, got %s x%d", tt.season, tt.kind, tt.count, cfg.Kind, cfg.Count)
		}
	}

	// Mist and birds keep their mix across seasons so a season change eases
	// them instead of repopulating.
	for _, l := range []Layer{LayerMist, LayerBirds} {
		first, _ := set.Config(phase.Spring, l)
		for _, s := range phase.Seasons() {
			cfg, _ := set.Config(s, l)
			if !first.SameMix(cfg) {
				t.Errorf("%s: %s changes the particle mix", l, s)
			}
		}
	}

	winterBirds, _ := set.Config(phase.Winter, LayerBirds)
	if winterBirds.Dim != 1 {
		t.Errorf("Expected birds hidden in winter, dim %g", winterBirds.Dim)
	}
}

func TestLayersByPhase(t *testing.T) {
	set := Default()
	tests := []struct {
		phase phase.Phase
		want  []Layer
	}{
		{phase.Landing, []Layer{LayerHero}},
		{phase.Transitioning, []Layer{LayerMist, LayerBirds, LayerPrecip, LayerHero}},
		{phase.Map, []Layer{LayerMist, LayerBirds, LayerPrecip}},
	}
	for _, tt := range tests {
		entries := set.Layers(phase.Mode{Phase: tt.phase, Season: phase.Autumn})
		if len(entries) != len(tt.want) {
			t.Fatalf("%s: expected %d layers, got %d", tt.phase, len(tt.want), len(entries))
		}
		for i, e := range entries {
			if e.Layer != tt.want[i] {
				t.Errorf("%s: layer %d: expected %s, got %s", tt.phase, i, tt.want[i], e.Layer)
			}
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Seasons[phase.Winter][LayerPrecip] = particle.EmitterConfig{Name: "changed"}
	b.Hero.Palette[0] = color.NRGBA{}
	if a.Seasons[phase.Winter][LayerPrecip].Name == "changed" {
		t.Error("Expected clone maps to be independent")
	}
	if a.Hero.Palette[0] == (color.NRGBA{}) {
		t.Error("Expected clone palettes to be independent")
	}
}

func TestParseLayer(t *testing.T) {
	if l, err := ParseLayer("birds"); err != nil || l != LayerBirds {
		t.Errorf("ParseLayer(birds) = %s, %v", l, err)
	}
	if _, err := ParseLayer("rain"); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Expected ErrUnknownLayer, got %v", err)
	}
	if _, err := Default().Config(phase.Winter, Layer("rain")); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Expected ErrUnknownLayer from Config, got %v", err)
	}
}

func TestApplyScript(t *testing.T) {
	src := `({
		hero: { count: 12, opacity: [0.1, 0.2] },
		winter: {
			precip: { count: 200, size: [2, 5], palette: ["#ffffff", rgba(200, 220, 255, 0.5)] },
			birds: { dim: 0.5 },
		},
		fall: { precip: { kind: "petal" } },
	})`
	out, err := Default().ApplyScript(src)
	if err != nil {
		t.Fatalf("ApplyScript: %v", err)
	}
	if out.Hero.Count != 12 || out.Hero.OpacityRange != particle.Between(0.1, 0.2) {
		t.Errorf("Hero override not applied: count %d opacity %v", out.Hero.Count, out.Hero.OpacityRange)
	}
	snow := out.Seasons[phase.Winter][LayerPrecip]
	if snow.Count != 200 || snow.SizeRange != particle.Between(2, 5) {
		t.Errorf("Winter precip override not applied: %+v", snow)
	}
	if len(snow.Palette) != 2 || snow.Palette[1] != (color.NRGBA{R: 200, G: 220, B: 255, A: 128}) {
		t.Errorf("Unexpected palette %v", snow.Palette)
	}
	if d := out.Seasons[phase.Winter][LayerBirds].Dim; d != 0.5 {
		t.Errorf("Expected winter birds dim 0.5, got %g", d)
	}
	leaves := out.Seasons[phase.Autumn][LayerPrecip]
	if leaves.Kind != particle.KindPetal || leaves.Pattern != particle.PatternLinearFall {
		t.Errorf("Expected autumn precip to become falling petals, got %s/%s", leaves.Kind, leaves.Pattern)
	}

	// The source set is untouched.
	if Default().Hero.Count == 12 {
		t.Error("Expected ApplyScript to leave the original set alone")
	}
}

func TestApplyScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `({`, "preset script failed"},
		{"not an object", `42`, "must evaluate to an object"},
		{"unknown season", `({ monsoon: {} })`, "unknown preset key"},
		{"unknown layer", `({ winter: { rain: {} } })`, "unknown layer"},
		{"unknown field", `({ hero: { colour: 1 } })`, "unknown field"},
		{"fractional count", `({ hero: { count: 1.5 } })`, "expected integer"},
		{"inverted range", `({ winter: { precip: { size: [5, 1] } } })`, "invalid emitter config"},
		{"bad colour", `({ hero: { palette: ["#zzzzzz"] } })`, "palette"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().ApplyScript(tt.src)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestInvalidRangeWrapsConfigError(t *testing.T) {
	_, err := Default().ApplyScript(`({ winter: { precip: { opacity: [0.5, 2] } } })`)
	if !errors.Is(err, particle.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.js")
	if err := os.WriteFile(path, []byte(`({ summer: { precip: { count: 5 } } })`), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := Default().LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if c := out.Seasons[phase.Summer][LayerPrecip].Count; c != 5 {
		t.Errorf("Expected summer precip count 5, got %d", c)
	}
	if _, err := Default().LoadScript(filepath.Join(t.TempDir(), "missing.js")); err == nil {
		t.Error("Expected a missing script to fail")
	}
}

func TestApplyScriptKindThenPattern(t *testing.T) {
	src := `({ summer: { birds: { kind: "bird", pattern: "sine-cruise" } } })`
	// Object keys come back as a Go map; repeat so any ordering shows up.
	for i := 0; i < 200; i++ {
		out, err := Default().ApplyScript(src)
		if err != nil {
			t.Fatalf("ApplyScript: %v", err)
		}
		cfg := out.Seasons[phase.Summer][LayerBirds]
		if cfg.Kind != particle.KindBird || cfg.Pattern != particle.PatternSineCruise {
			t.Fatalf("run %d: expected bird/%s, got %s/%s", i, particle.PatternSineCruise, cfg.Kind, cfg.Pattern)
		}
	}

	// Without an explicit pattern the new kind's default applies.
	out, err := Default().ApplyScript(`({ summer: { precip: { kind: "snowflake" } } })`)
	if err != nil {
		t.Fatalf("ApplyScript: %v", err)
	}
	if p := out.Seasons[phase.Summer][LayerPrecip].Pattern; p != particle.PatternLinearFall {
		t.Errorf("Expected %s, got %s", particle.PatternLinearFall, p)
	}
	if _, err := Default().ApplyScript(`({ hero: { kind: "comet" } })`); err == nil || !strings.Contains(err.Error(), "kind") {
		t.Errorf("Expected an unknown kind error, got %v", err)
	}
}
