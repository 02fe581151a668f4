package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"atmos/game"
	"atmos/phase"
)

func main() {
	config := game.DefaultConfig().FromEnv()

	season := flag.String("season", config.Season.String(), "starting season: spring, summer, autumn or winter")
	flag.StringVar(&config.PresetPath, "presets", config.PresetPath, "JavaScript preset override script (or set ATMOS_PRESETS)")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "particle seed, 0 for random")
	flag.BoolVar(&config.Debug, "debug", config.Debug, "show the layer overlay (toggle with F1)")
	flag.BoolVar(&config.ProfileOnFPSDrop, "profile", config.ProfileOnFPSDrop, "capture a CPU profile when FPS drops")
	flag.Parse()

	s, ok := phase.ParseSeason(*season)
	if !ok {
		log.Fatalf("Unknown season %q", *season)
	}
	config.Season = s

	g := game.NewGame(config)

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Atmos")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
