package preset

import (
	"image/color"

	"golang.org/x/image/colornames"

	"atmos/particle"
	"atmos/phase"
)

func named(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Hero cloud bank over the landing screen.
var heroClouds = particle.MustConfig(particle.EmitterConfig{
	Name:             "hero-clouds",
	Kind:             particle.KindWisp,
	Count:            28,
	SizeRange:        particle.Between(140, 460),
	SpeedXRange:      particle.Between(0.06, 0.24),
	OpacityRange:     particle.Between(0.12, 0.34),
	WobbleSpeedRange: particle.Fixed(0.003),
	StretchXRange:    particle.Between(2.0, 4.5),
	StretchYRange:    particle.Between(0.35, 0.85),
	Palette:          []color.NRGBA{rgb(220, 225, 215)},
	SpawnX:           particle.Between(-0.25, 1.25),
	SpawnY:           particle.Between(0, 1),
	BreathDepth:      0.15,
	Smoothing:        0.2,
})

// Mist palettes share their length so a season change can ease each wisp to
// the entry at the same index.
var (
	mistWarm = []color.NRGBA{rgb(200, 210, 195), rgb(190, 200, 185), rgb(180, 195, 175), rgb(210, 215, 200), rgb(195, 205, 190)}
	mistSoft = []color.NRGBA{rgb(214, 222, 205), rgb(205, 215, 200), rgb(198, 210, 196), rgb(222, 226, 212), rgb(208, 218, 204)}
	mistHaze = []color.NRGBA{rgb(215, 205, 185), rgb(205, 195, 178), rgb(198, 190, 172), rgb(222, 212, 192), rgb(210, 200, 182)}
	mistCool = []color.NRGBA{rgb(220, 230, 240), rgb(210, 220, 235), rgb(200, 215, 230), rgb(225, 235, 245), rgb(215, 225, 240)}
)

func mist(name string, palette []color.NRGBA, scale float64) particle.EmitterConfig {
	return particle.MustConfig(particle.EmitterConfig{
		Name:             name,
		Kind:             particle.KindWisp,
		Count:            14,
		SizeRange:        particle.Between(90, 220),
		SpeedXRange:      particle.Between(0.15, 0.45),
		OpacityRange:     particle.Between(0.25, 0.45),
		WobbleAmpRange:   particle.Between(0.02, 0.06),
		WobbleSpeedRange: particle.Between(0.002, 0.005),
		StretchXRange:    particle.Between(2.5, 4.0),
		StretchYRange:    particle.Between(0.3, 0.5),
		Palette:          palette,
		SpawnX:           particle.Between(-0.2, 1.2),
		SpawnY:           particle.Between(0.35, 0.85),
		BreathDepth:      0.2,
		OpacityScale:     scale,
	})
}

func birds(name string, dim float64) particle.EmitterConfig {
	return particle.MustConfig(particle.EmitterConfig{
		Name:             name,
		Kind:             particle.KindBird,
		Count:            10,
		SizeRange:        particle.Between(14, 32),
		SpeedXRange:      particle.Between(0.6, 1.3),
		OpacityRange:     particle.Between(0.3, 0.8),
		WobbleAmpRange:   particle.Between(4, 14),
		WobbleSpeedRange: particle.Between(0.004, 0.012),
		FlapSpeedRange:   particle.Between(0.15, 0.26),
		Palette:          []color.NRGBA{{R: 20, G: 20, B: 20, A: 217}},
		SpawnX:           particle.Between(0, 1),
		SpawnY:           particle.Between(0.05, 0.45),
		Dim:              dim,
		GlideChance:      0.004,
		GlideTicksRange:  particle.Between(40, 120),
	})
}

var (
	petals = particle.MustConfig(particle.EmitterConfig{
		Name:               "spring-petals",
		Kind:               particle.KindPetal,
		Count:              40,
		SizeRange:          particle.Between(3, 6),
		SpeedYRange:        particle.Between(0.4, 0.9),
		OpacityRange:       particle.Between(0.4, 0.85),
		WobbleAmpRange:     particle.Between(0.3, 0.9),
		WobbleSpeedRange:   particle.Between(0.01, 0.03),
		RotationSpeedRange: particle.Between(-0.04, 0.04),
		Palette:            []color.NRGBA{named(colornames.Pink), named(colornames.Mistyrose), named(colornames.Lavenderblush), rgb(248, 200, 220)},
		LightnessJitter:    0.04,
		SpawnY:             particle.Between(-0.25, 1),
		WindResponse:       0.8,
	})

	motes = particle.MustConfig(particle.EmitterConfig{
		Name:             "summer-motes",
		Kind:             particle.KindMote,
		Count:            30,
		SizeRange:        particle.Between(1.5, 3.5),
		SpeedYRange:      particle.Between(0.05, 0.25),
		OpacityRange:     particle.Between(0.2, 0.6),
		WobbleAmpRange:   particle.Between(0.2, 0.5),
		WobbleSpeedRange: particle.Between(0.01, 0.02),
		Palette:          []color.NRGBA{named(colornames.Lightyellow), named(colornames.Wheat), rgb(250, 230, 170)},
		SpawnY:           particle.Between(-0.25, 1),
		WindResponse:     0.5,
	})

	leaves = particle.MustConfig(particle.EmitterConfig{
		Name:               "autumn-leaves",
		Kind:               particle.KindLeaf,
		Count:              25,
		SizeRange:          particle.Between(3, 8),
		SpeedYRange:        particle.Between(0.6, 1.6),
		OpacityRange:       particle.Between(0.2, 0.7),
		WobbleAmpRange:     particle.Between(0.4, 1.2),
		WobbleSpeedRange:   particle.Between(0.01, 0.03),
		RotationSpeedRange: particle.Between(-0.05, 0.05),
		Palette:            []color.NRGBA{rgb(170, 100, 35), rgb(190, 110, 30), rgb(150, 85, 25), rgb(200, 120, 45)},
		HueJitter:          8,
		LightnessJitter:    0.05,
		SpawnY:             particle.Between(-0.25, 1),
		WindResponse:       1,
	})

	snow = particle.MustConfig(particle.EmitterConfig{
		Name:             "winter-snow",
		Kind:             particle.KindSnowflake,
		Count:            120,
		SizeRange:        particle.Between(1.5, 4.5),
		SpeedYRange:      particle.Between(0.5, 1.5),
		OpacityRange:     particle.Between(0.4, 0.9),
		WobbleAmpRange:   particle.Between(0.2, 0.7),
		WobbleSpeedRange: particle.Between(0.01, 0.04),
		Palette:          []color.NRGBA{named(colornames.White), named(colornames.Snow), named(colornames.Aliceblue)},
		SpawnY:           particle.Between(-0.25, 1),
		WindResponse:     0.6,
	})
)

// Default returns the built-in preset table.
func Default() Set {
	s := Set{
		Hero: heroClouds,
		Seasons: map[phase.Season]map[Layer]particle.EmitterConfig{
			phase.Spring: {
				LayerMist:   mist("spring-mist", mistSoft, 0.4),
				LayerBirds:  birds("spring-birds", 0),
				LayerPrecip: petals,
			},
			phase.Summer: {
				LayerMist:   mist("summer-mist", mistWarm, 0.33),
				LayerBirds:  birds("summer-birds", 0),
				LayerPrecip: motes,
			},
			phase.Autumn: {
				LayerMist:   mist("autumn-mist", mistHaze, 0.6),
				LayerBirds:  birds("autumn-birds", 0.2),
				LayerPrecip: leaves,
			},
			phase.Winter: {
				LayerMist:   mist("winter-mist", mistCool, 1),
				LayerBirds:  birds("winter-birds", 1),
				LayerPrecip: snow,
			},
		},
	}
	// Callers may mutate the maps; never hand out the package-level palettes.
	return s.Clone()
}
