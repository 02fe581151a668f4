// Command snapshot runs the atmosphere headless and writes PNG frames.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"atmos/atmosphere"
	"atmos/phase"
	"atmos/preset"
	"atmos/sink/raster"
)

func main() {
	width := flag.Int("width", 800, "frame width in pixels")
	height := flag.Int("height", 600, "frame height in pixels")
	frames := flag.Int("frames", 120, "ticks to simulate")
	every := flag.Int("every", 30, "write a PNG every N ticks")
	outDir := flag.String("out", "frames", "output directory")
	seasonName := flag.String("season", "summer", "season: spring, summer, autumn or winter")
	phaseName := flag.String("phase", "map", "phase: landing, transitioning or map")
	partAt := flag.Int("part-at", -1, "tick at which the hero clouds start parting, -1 for never")
	seed := flag.Int64("seed", 1, "particle seed")
	presetPath := flag.String("presets", os.Getenv("ATMOS_PRESETS"), "JavaScript preset override script")
	flag.Parse()

	season, ok := phase.ParseSeason(*seasonName)
	if !ok {
		log.Fatalf("Unknown season %q", *seasonName)
	}
	ph, ok := phase.ParsePhase(*phaseName)
	if !ok {
		log.Fatalf("Unknown phase %q", *phaseName)
	}
	if *every <= 0 {
		log.Fatalf("-every must be positive, got %d", *every)
	}

	presets := preset.Default()
	if *presetPath != "" {
		var err error
		if presets, err = presets.LoadScript(*presetPath); err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
	}

	ctrl, err := atmosphere.NewWithPresets(presets,
		atmosphere.WithSeed(*seed),
		atmosphere.WithMode(phase.Mode{Phase: ph, Season: season}),
	)
	if err != nil {
		log.Fatalf("Failed to create atmosphere: %v", err)
	}
	sink, err := raster.New(*width, *height)
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	ctrl.Resize(float64(*width), float64(*height))
	log.Printf("Rendering %d ticks of %s at %dx%d", *frames, phase.Mode{Phase: ph, Season: season}, *width, *height)

	start := time.Now()
	written := 0
	for i := 1; i <= *frames; i++ {
		if i == *partAt {
			ctrl.BeginPartingTransition()
		}
		ctrl.Tick(sink)
		if i%*every != 0 {
			continue
		}
		name := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.png", i))
		if err := sink.SavePNG(name); err != nil {
			log.Fatalf("Failed to write frame: %v", err)
		}
		written++
	}

	for _, s := range ctrl.Stats() {
		log.Printf("  %-6s %-14s %-9s n=%d fade=%.2f wraps=%d", s.Layer, s.Name, s.Kind, s.Count, s.Fade, s.Wraps)
	}
	log.Printf("Wrote %d frames in %v", written, time.Since(start).Round(time.Millisecond))
}
