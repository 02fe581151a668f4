package phase

import "strings"

// Phase is the top-level UI phase.
type Phase int

const (
	Landing       Phase = iota // hero screen with clouds
	Transitioning              // clouds parting, hero zooming away
	Map                        // interactive map with seasonal effects
)

func (p Phase) String() string {
	switch p {
	case Landing:
		return "landing"
	case Transitioning:
		return "transitioning"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// ParsePhase accepts a phase name, case-insensitively.
func ParsePhase(name string) (Phase, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "landing":
		return Landing, true
	case "transitioning":
		return Transitioning, true
	case "map":
		return Map, true
	}
	return 0, false
}

// Season selects the seasonal effect mix.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
	seasonCount
)

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

func (s Season) String() string {
	if s < 0 || s >= seasonCount {
		return "unknown"
	}
	return seasonNames[s]
}

// Next returns the following season, wrapping winter back to spring.
func (s Season) Next() Season {
	return (s + 1) % seasonCount
}

// Seasons lists every season in calendar order.
func Seasons() []Season {
	return []Season{Spring, Summer, Autumn, Winter}
}

// ParseSeason accepts a season name, case-insensitively. "fall" is an alias
// for autumn.
func ParseSeason(name string) (Season, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "fall" {
		return Autumn, true
	}
	for i, n := range seasonNames {
		if n == name {
			return Season(i), true
		}
	}
	return 0, false
}

// Mode is the external selector the atmosphere reacts to.
type Mode struct {
	Phase  Phase
	Season Season
}

func (m Mode) String() string {
	return m.Phase.String() + "/" + m.Season.String()
}
