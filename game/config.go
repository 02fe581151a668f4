package game

import (
	"log"
	"os"
	"strconv"

	"atmos/phase"
)

// Config holds host configuration
type Config struct {
	// ScreenWidth is the initial window width in pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in pixels
	ScreenHeight int

	// Season is the season shown at startup
	Season phase.Season

	// PresetPath is an optional JavaScript preset override script
	PresetPath string

	// Seed makes particle sampling reproducible; zero seeds from the clock
	Seed int64

	// Wind is the peak gust speed in pixels per tick
	Wind float64

	// ProfileOnFPSDrop captures a CPU profile and trace when FPS sags
	ProfileOnFPSDrop bool

	// FPSDropThreshold is the FPS below which a drop is reported
	FPSDropThreshold float64

	// ProfilesDir receives captured profiles
	ProfilesDir string

	// Debug shows the layer overlay at startup
	Debug bool
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:      1024,
		ScreenHeight:     768,
		Season:           phase.Summer,
		Wind:             0.35,
		FPSDropThreshold: 55.0,
		ProfilesDir:      "profiles",
	}
}

// FromEnv overrides c with ATMOS_* environment variables.
func (c Config) FromEnv() Config {
	if v := os.Getenv("ATMOS_PRESETS"); v != "" {
		c.PresetPath = v
	}
	if v := os.Getenv("ATMOS_SEASON"); v != "" {
		if s, ok := phase.ParseSeason(v); ok {
			c.Season = s
		} else {
			log.Printf("Ignoring unknown ATMOS_SEASON %q", v)
		}
	}
	if v := os.Getenv("ATMOS_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		} else {
			log.Printf("Ignoring invalid ATMOS_SEED: %v", err)
		}
	}
	if os.Getenv("ATMOS_DEBUG") == "1" {
		c.Debug = true
	}
	if os.Getenv("ATMOS_PROFILE") == "1" {
		c.ProfileOnFPSDrop = true
	}
	return c
}
